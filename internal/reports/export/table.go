// Package export renders report tables into downloadable documents.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stockledger-backend/pkg/enums"
)

const dateLayout = "1/2/2006"

type ValueKind int

const (
	KindText ValueKind = iota
	KindInt
	KindMoney
	KindDate
)

// Value is a single typed cell. Writers that understand types (xlsx) keep
// them; text writers use String.
type Value struct {
	Kind  ValueKind
	text  string
	num   int64
	money decimal.Decimal
	date  time.Time
}

func Text(s string) Value { return Value{Kind: KindText, text: s} }
func Int(n int64) Value { return Value{Kind: KindInt, num: n} }
func Money(d decimal.Decimal) Value { return Value{Kind: KindMoney, money: d} }
func Date(t time.Time) Value { return Value{Kind: KindDate, date: t} }

func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindMoney:
		return FormatMoney(v.money)
	case KindDate:
		return FormatDate(v.date)
	default:
		return v.text
	}
}

// FormatMoney renders an amount as $15.00.
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

type Column struct {
	Header string
	// Width is in spreadsheet character units; the PDF writer scales it.
	Width float64
}

// Table is the format-independent body of a report.
type Table struct {
	Kind        enums.ReportKind
	Columns     []Column
	Rows        [][]Value
	GeneratedAt time.Time
}

// Title returns e.g. "SALES REPORT".
func (t Table) Title() string {
	return strings.ToUpper(t.Kind.String()) + " REPORT"
}

func (t Table) Subtitle() string {
	return "Generated on: " + FormatDate(t.GeneratedAt)
}

func (t Table) headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Header
	}
	return out
}
