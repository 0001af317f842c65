package export

import (
	"bytes"
	"strings"
)

// writeText renders the table as tab-delimited UTF-8 text. It is served as
// the docx format.
func writeText(t Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(t.Title())
	buf.WriteString("\n\n")
	buf.WriteString(t.Subtitle())
	buf.WriteString("\n\n")
	buf.WriteString(strings.Join(t.headers(), "\t"))
	buf.WriteByte('\n')

	cells := make([]string, 0, len(t.Columns))
	for _, row := range t.Rows {
		cells = cells[:0]
		for _, v := range row {
			cells = append(cells, sanitizeCell(v.String()))
		}
		buf.WriteString(strings.Join(cells, "\t"))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

var cellReplacer = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

func sanitizeCell(s string) string {
	return cellReplacer.Replace(s)
}
