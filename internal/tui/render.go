package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/thiagokokada/jjk-go/internal/graph"
	"github.com/thiagokokada/jjk-go/internal/vcs"
)

// renderGraphCells styles one layout row: node halves by commit state,
// lane halves dim. The engine never truncates, so clipping overly wide
// gutters to the terminal is handled here by the caller via clipLine.
func (m *model) renderGraphCells(row graph.Row) string {
	var b strings.Builder
	for _, cell := range row.Cells {
		b.WriteString(m.renderCellHalf(cell.Left, cell.KindLeft))
		b.WriteString(m.renderCellHalf(cell.Right, cell.KindRight))
	}
	return b.String()
}

func (m *model) renderCellHalf(r rune, kind graph.CellKind) string {
	s := string(r)
	if !kind.Node {
		return m.styles.lane.Render(s)
	}
	switch {
	case kind.CheckedOut:
		return m.styles.nodeWorking.Render(s)
	case kind.Immutable:
		return m.styles.nodeOld.Render(s)
	default:
		return m.styles.node.Render(s)
	}
}

// renderLogLine renders one list row: graph gutter plus entry columns.
func (m *model) renderLogLine(entry *vcs.Entry, row graph.Row, selected bool) string {
	var b strings.Builder
	b.WriteString(m.renderGraphCells(row))
	b.WriteString(" ")
	b.WriteString(m.styles.changeID.Render(entry.ChangeID))
	if entry.Author != "" {
		b.WriteString(" ")
		b.WriteString(m.styles.author.Render(entry.Author))
	}
	if entry.Timestamp != "" {
		b.WriteString(" ")
		b.WriteString(m.styles.timestamp.Render(entry.Timestamp))
	}
	if len(entry.Bookmarks) > 0 {
		b.WriteString(" ")
		b.WriteString(m.styles.bookmark.Render("[" + strings.Join(entry.Bookmarks, ",") + "]"))
	}
	description := entry.Description
	if description == "" {
		description = "(no description)"
	}
	b.WriteString(" ")
	if entry.Empty {
		b.WriteString(m.styles.dim.Render(description))
	} else {
		b.WriteString(m.styles.description.Render(description))
	}

	line := clipLine(b.String(), m.width)
	if selected {
		return m.styles.selection.Render(line)
	}
	return line
}

// clipLine truncates a styled line to width terminal cells, appending an
// ellipsis when something was cut.
func clipLine(line string, width int) string {
	if width <= 0 {
		return line
	}
	if lipgloss.Width(line) <= width {
		return line
	}
	truncated := truncateANSI(line, width-1)
	return truncated + "…"
}

// truncateANSI cuts a string at the given display width while keeping
// escape sequences intact.
func truncateANSI(s string, width int) string {
	var b strings.Builder
	cols := 0
	inEscape := false
	full := false
	for _, r := range s {
		switch {
		case inEscape:
			b.WriteRune(r)
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			b.WriteRune(r)
			inEscape = true
		default:
			w := runewidth.RuneWidth(r)
			if full || cols+w > width {
				full = true
				continue
			}
			b.WriteRune(r)
			cols += w
		}
	}
	return b.String()
}
