package tui

import "github.com/charmbracelet/lipgloss"

type styleSet struct {
	node        lipgloss.Style
	nodeWorking lipgloss.Style
	nodeOld     lipgloss.Style
	lane        lipgloss.Style
	changeID    lipgloss.Style
	author      lipgloss.Style
	timestamp   lipgloss.Style
	bookmark    lipgloss.Style
	description lipgloss.Style
	dim         lipgloss.Style
	selection   lipgloss.Style
	statusOK    lipgloss.Style
	statusErr   lipgloss.Style
	diffAdd     lipgloss.Style
	diffDel     lipgloss.Style
	diffHeader  lipgloss.Style
	title       lipgloss.Style
	prompt      lipgloss.Style
}

func newStyles(p colorPalette) styleSet {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return styleSet{
		node:        fg(p.Node),
		nodeWorking: fg(p.NodeWorking).Bold(true),
		nodeOld:     fg(p.NodeOld),
		lane:        fg(p.Lane),
		changeID:    fg(p.ChangeID).Bold(true),
		author:      fg(p.Author),
		timestamp:   fg(p.Timestamp),
		bookmark:    fg(p.Bookmark).Bold(true),
		description: fg(p.Description),
		dim:         fg(p.Dim),
		selection:   lipgloss.NewStyle().Background(lipgloss.Color(p.Selection)),
		statusOK:    fg(p.StatusOK),
		statusErr:   fg(p.StatusErr).Bold(true),
		diffAdd:     fg(p.DiffAdd),
		diffDel:     fg(p.DiffDel),
		diffHeader:  fg(p.DiffHeader).Bold(true),
		title:       lipgloss.NewStyle().Bold(true),
		prompt:      fg(p.Timestamp).Bold(true),
	}
}
