package enums

import "fmt"

// ReportKind selects which dataset a report is built from.
type ReportKind string

const (
	ReportKindSales    ReportKind = "sales"
	ReportKindItems    ReportKind = "items"
	ReportKindCustomer ReportKind = "customer"
)

var validReportKinds = []ReportKind{
	ReportKindSales,
	ReportKindItems,
	ReportKindCustomer,
}

// ReportKinds returns every known kind in declaration order.
func ReportKinds() []ReportKind {
	return append([]ReportKind(nil), validReportKinds...)
}

// String implements fmt.Stringer.
func (k ReportKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known ReportKind.
func (k ReportKind) IsValid() bool {
	for _, candidate := range validReportKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseReportKind converts raw input into a ReportKind.
func ParseReportKind(value string) (ReportKind, error) {
	for _, candidate := range validReportKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report type %q", value)
}

// ReportFormat selects the exported file encoding.
type ReportFormat string

const (
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatPDF  ReportFormat = "pdf"
	// ReportFormatDOCX is served as tab-delimited text under the Word content type.
	ReportFormatDOCX ReportFormat = "docx"
)

var validReportFormats = []ReportFormat{
	ReportFormatXLSX,
	ReportFormatPDF,
	ReportFormatDOCX,
}

// ReportFormats returns every known format in declaration order.
func ReportFormats() []ReportFormat {
	return append([]ReportFormat(nil), validReportFormats...)
}

func (f ReportFormat) String() string {
	return string(f)
}

func (f ReportFormat) IsValid() bool {
	for _, candidate := range validReportFormats {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseReportFormat converts raw input into a ReportFormat.
func ParseReportFormat(value string) (ReportFormat, error) {
	for _, candidate := range validReportFormats {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report format %q", value)
}
