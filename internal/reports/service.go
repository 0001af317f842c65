package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stockledger-backend/internal/inventory"
	"github.com/angelmondragon/stockledger-backend/internal/reports/export"
	"github.com/angelmondragon/stockledger-backend/internal/sales"
	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
	"github.com/angelmondragon/stockledger-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
)

const DefaultPreviewLimit = 10

// SalesSource is the read side of the sales repository.
type SalesSource interface {
	ListRecent(ctx context.Context, limit int) ([]models.Sale, error)
	SummarizeByCustomer(ctx context.Context, limit int) ([]sales.CustomerTotal, error)
	SumTotals(ctx context.Context) (decimal.Decimal, error)
}

type ItemSource interface {
	ListAll(ctx context.Context, limit int) ([]models.InventoryItem, error)
	Count(ctx context.Context) (int64, error)
}

type CustomerCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Summary holds the dashboard totals.
type Summary struct {
	TotalItems     int64           `json:"totalItems"`
	TotalSales     decimal.Decimal `json:"totalSales"`
	TotalCustomers int64           `json:"totalCustomers"`
}

type Service interface {
	// Preview returns at most the configured number of rows for kind, shaped
	// for JSON.
	Preview(ctx context.Context, kind enums.ReportKind) (any, error)
	Export(ctx context.Context, kind enums.ReportKind, format enums.ReportFormat) (*export.Document, error)
	Summary(ctx context.Context) (*Summary, error)
}

type ServiceParams struct {
	Sales        SalesSource
	Items        ItemSource
	Customers    CustomerCounter
	PreviewLimit int
	Clock        func() time.Time
}

type service struct {
	sales        SalesSource
	items        ItemSource
	customers    CustomerCounter
	previewLimit int
	now          func() time.Time
}

func NewService(p ServiceParams) (Service, error) {
	if p.Sales == nil {
		return nil, fmt.Errorf("sales source required")
	}
	if p.Items == nil {
		return nil, fmt.Errorf("item source required")
	}
	if p.Customers == nil {
		return nil, fmt.Errorf("customer counter required")
	}
	limit := p.PreviewLimit
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}
	now := p.Clock
	if now == nil {
		now = time.Now
	}
	return &service{
		sales:        p.Sales,
		items:        p.Items,
		customers:    p.Customers,
		previewLimit: limit,
		now:          now,
	}, nil
}

func (s *service) Preview(ctx context.Context, kind enums.ReportKind) (any, error) {
	switch kind {
	case enums.ReportKindSales:
		rows, err := s.sales.ListRecent(ctx, s.previewLimit)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load sales preview")
		}
		out := make([]sales.SaleDTO, 0, len(rows))
		for i := range rows {
			out = append(out, *sales.FromModel(&rows[i]))
		}
		return out, nil
	case enums.ReportKindItems:
		rows, err := s.items.ListAll(ctx, s.previewLimit)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load items preview")
		}
		out := make([]inventory.ItemDTO, 0, len(rows))
		for i := range rows {
			out = append(out, *inventory.FromModel(&rows[i]))
		}
		return out, nil
	case enums.ReportKindCustomer:
		rows, err := s.sales.SummarizeByCustomer(ctx, s.previewLimit)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer preview")
		}
		if rows == nil {
			rows = []sales.CustomerTotal{}
		}
		return rows, nil
	default:
		return nil, invalidKind(kind)
	}
}

func (s *service) Export(ctx context.Context, kind enums.ReportKind, format enums.ReportFormat) (*export.Document, error) {
	if !format.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid format")
	}
	table, err := s.table(ctx, kind)
	if err != nil {
		return nil, err
	}
	doc, err := export.Render(table, format)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Error generating report")
	}
	return doc, nil
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	items, err := s.items.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count items")
	}
	customers, err := s.customers.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count customers")
	}
	revenue, err := s.sales.SumTotals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum sales")
	}
	return &Summary{TotalItems: items, TotalSales: revenue, TotalCustomers: customers}, nil
}

// table loads the full, unbounded dataset for kind.
func (s *service) table(ctx context.Context, kind enums.ReportKind) (export.Table, error) {
	t := export.Table{Kind: kind, GeneratedAt: s.now()}
	switch kind {
	case enums.ReportKindSales:
		rows, err := s.sales.ListRecent(ctx, 0)
		if err != nil {
			return t, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load sales")
		}
		t.Columns, t.Rows = salesColumns, salesRows(rows)
	case enums.ReportKindItems:
		rows, err := s.items.ListAll(ctx, 0)
		if err != nil {
			return t, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load items")
		}
		t.Columns, t.Rows = itemColumns, itemRows(rows)
	case enums.ReportKindCustomer:
		rows, err := s.sales.SummarizeByCustomer(ctx, 0)
		if err != nil {
			return t, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate customers")
		}
		t.Columns, t.Rows = customerColumns, customerRows(rows)
	default:
		return t, invalidKind(kind)
	}
	return t, nil
}

func invalidKind(kind enums.ReportKind) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "Invalid report type").
		WithDetails(map[string]any{"type": kind.String()})
}
