package graph

import "strings"

// RenderRowPlain flattens a row to plain text, two characters per cell,
// with trailing blanks trimmed. This is the unstyled form used by tests
// and the -plain output mode; the TUI renders cells itself so it can
// color node and lane cells independently.
func RenderRowPlain(row Row) string {
	var b strings.Builder
	b.Grow(len(row.Cells) * 2)
	for _, c := range row.Cells {
		b.WriteRune(c.Left)
		b.WriteRune(c.Right)
	}
	return strings.TrimRight(b.String(), " ")
}

// RenderPlain renders every row on its own line.
func RenderPlain(rows []Row) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = RenderRowPlain(row)
	}
	return out
}
