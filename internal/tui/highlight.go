package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
)

// renderDiff colors a unified diff for the detail pane. Added/removed
// lines use the palette; unchanged code lines are syntax highlighted
// with a lexer picked from the most recent file header, when enabled.
func (m *model) renderDiff(diff string) string {
	if diff == "" {
		return ""
	}
	style := chromaStyleFor(m.palette)
	var lexer chroma.Lexer
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "diff "),
			strings.HasPrefix(line, "index "),
			strings.HasPrefix(line, "new file"),
			strings.HasPrefix(line, "deleted file"),
			strings.HasPrefix(line, "rename "),
			strings.HasPrefix(line, "similarity "):
			b.WriteString(m.styles.diffHeader.Render(line))
		case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
			if path, ok := diffPathFromLine(line); ok && path != "" {
				lexer = lexerForPath(path)
			}
			b.WriteString(m.styles.diffHeader.Render(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(m.styles.dim.Render(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(m.styles.diffAdd.Render(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(m.styles.diffDel.Render(line))
		default:
			b.WriteString(m.highlightCodeLine(lexer, style, line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// highlightCodeLine tokenizes one context line, falling back to plain
// text whenever highlighting is off or the lexer cannot cope.
func (m *model) highlightCodeLine(lexer chroma.Lexer, style *chroma.Style, line string) string {
	if !m.syntax || lexer == nil || style == nil || line == "" {
		return line
	}
	code := line
	if strings.HasPrefix(code, " ") {
		code = code[1:]
	}
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return line
	}
	var out strings.Builder
	if err := formatters.TTY256.Format(&out, style, iterator); err != nil {
		return line
	}
	prefix := ""
	if strings.HasPrefix(line, " ") {
		prefix = " "
	}
	return prefix + strings.TrimRight(out.String(), "\n")
}

// diffPathFromLine extracts the path from a "+++ b/path" header.
// "--- " headers and /dev/null report no path.
func diffPathFromLine(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "+++ ")
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	if rest == "/dev/null" {
		return "", true
	}
	if trimmed, ok := strings.CutPrefix(rest, "b/"); ok {
		return trimmed, true
	}
	return rest, true
}

func lexerForPath(path string) chroma.Lexer {
	lexer := lexers.Match(path)
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}

func chromaStyleFor(p colorPalette) *chroma.Style {
	name := "github"
	if p.Dark {
		name = "monokai"
	}
	if style := chromastyles.Get(name); style != nil {
		return style
	}
	return chromastyles.Fallback
}
