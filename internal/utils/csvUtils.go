package utils

import "strings"

// QuoteCSVRow renders one CSV line with every field wrapped in double quotes
// and embedded quotes doubled. No line terminator is appended.
func QuoteCSVRow(fields []string) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	return b.String()
}
