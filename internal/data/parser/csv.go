// Package parser splits spreadsheet CSV exports into rows of fields.
package parser

import "strings"

// Parse splits text into rows of fields in a single pass.
//
// Commas separate fields; "\n", "\r\n" and a lone "\r" end a row. A double
// quote outside a quoted section opens one, inside it a doubled quote is a
// literal quote and a single quote closes it. Separators inside quotes are
// content. A trailing row without a newline is still returned, and an
// unterminated quote runs to the end of the input as one field.
//
// Parse never fails and does not check row lengths.
func Parse(text string) [][]string {
	rows := make([][]string, 0)
	row := make([]string, 0)
	var field strings.Builder
	inQuotes := false

	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inQuotes {
			switch {
			case c == '"' && i+1 < len(text) && text[i+1] == '"':
				field.WriteByte('"')
				i++
			case c == '"':
				inQuotes = false
			default:
				field.WriteByte(c)
			}
			continue
		}

		switch c {
		case '"':
			inQuotes = true
		case ',':
			endField()
		case '\n', '\r':
			endField()
			rows = append(rows, row)
			row = make([]string, 0)
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		default:
			field.WriteByte(c)
		}
	}

	if len(row) > 0 || field.Len() > 0 {
		endField()
		rows = append(rows, row)
	}

	return rows
}
