package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont       = "Helvetica"
	pdfRowHeight  = 7.0
	pdfCellMargin = 2.0
)

func writePDF(t Table) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(t.Title(), true)
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 10, tr(t.Title()), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont(pdfFont, "", 12)
	pdf.CellFormat(0, 8, tr(t.Subtitle()), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := pdfColumnWidths(pdf, t.Columns)

	pdf.SetFont(pdfFont, "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range t.headers() {
		pdf.CellFormat(widths[i], pdfRowHeight, tr(fit(pdf, h, widths[i])), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFont, "", 10)
	for _, row := range t.Rows {
		for i, v := range row {
			if i >= len(widths) {
				break
			}
			align := "L"
			if v.Kind == KindInt || v.Kind == KindMoney {
				align = "R"
			}
			pdf.CellFormat(widths[i], pdfRowHeight, tr(fit(pdf, v.String(), widths[i])), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pdfColumnWidths spreads the printable width across columns in proportion to
// their spreadsheet widths.
func pdfColumnWidths(pdf *fpdf.Fpdf, cols []Column) []float64 {
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right

	var sum float64
	for _, c := range cols {
		sum += colWidth(c)
	}
	out := make([]float64, len(cols))
	for i, c := range cols {
		out[i] = usable * colWidth(c) / sum
	}
	return out
}

func colWidth(c Column) float64 {
	if c.Width <= 0 {
		return defaultColW
	}
	return c.Width
}

// fit shortens s with a trailing "..." until it fits inside a cell of width w.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	limit := w - pdfCellMargin
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if pdf.GetStringWidth(candidate) <= limit {
			return candidate
		}
	}
	return ""
}
