package export

import (
	"fmt"

	"github.com/angelmondragon/stockledger-backend/pkg/enums"
)

// Document is a rendered report ready to be served or written to disk.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

type exportKey struct {
	kind   enums.ReportKind
	format enums.ReportFormat
}

type exportFunc func(Table) ([]byte, error)

var contentTypes = map[enums.ReportFormat]string{
	enums.ReportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	enums.ReportFormatPDF:  "application/pdf",
	enums.ReportFormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

var writers = map[enums.ReportFormat]exportFunc{
	enums.ReportFormatXLSX: writeXLSX,
	enums.ReportFormatPDF:  writePDF,
	enums.ReportFormatDOCX: writeText,
}

var exporters = buildExporters()

func buildExporters() map[exportKey]exportFunc {
	table := make(map[exportKey]exportFunc)
	for _, kind := range enums.ReportKinds() {
		for _, format := range enums.ReportFormats() {
			table[exportKey{kind: kind, format: format}] = writers[format]
		}
	}
	return table
}

// Filename returns "<kind>_report.<format>".
func Filename(kind enums.ReportKind, format enums.ReportFormat) string {
	return fmt.Sprintf("%s_report.%s", kind, format)
}

// ContentType returns the MIME type served for format.
func ContentType(format enums.ReportFormat) string {
	return contentTypes[format]
}

// Render writes t in the requested format.
func Render(t Table, format enums.ReportFormat) (*Document, error) {
	fn, ok := exporters[exportKey{kind: t.Kind, format: format}]
	if !ok || fn == nil {
		return nil, fmt.Errorf("no exporter for %s/%s", t.Kind, format)
	}
	body, err := fn(t)
	if err != nil {
		return nil, fmt.Errorf("render %s/%s: %w", t.Kind, format, err)
	}
	return &Document{
		Filename:    Filename(t.Kind, format),
		ContentType: ContentType(format),
		Body:        body,
	}, nil
}
