// Package tui is the interactive terminal frontend: a log list over the
// sequenced, laid-out history plus a detail view per revision.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thiagokokada/jjk-go/internal/graph"
	"github.com/thiagokokada/jjk-go/internal/vcs"
)

const (
	// loadMoreThreshold is how close to the end of the loaded window the
	// selection may get before the next page is requested.
	loadMoreThreshold = 50
	pageJump          = 10
)

// Options configures Run.
type Options struct {
	Service *vcs.Service
	Theme   ThemePreference
	Watch   bool
	Syntax  bool
}

// Run starts the interactive viewer and blocks until the user quits.
func Run(opts Options) error {
	m := newModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if opts.Watch {
		w, err := startWatcher(opts.Service.RepoPath(), func() {
			p.Send(repoChangedMsg{})
		})
		if err != nil {
			slog.Error("auto reload disabled", slog.Any("error", err))
		} else {
			defer w.Close()
		}
	}

	_, err := p.Run()
	return err
}

type viewMode int

const (
	viewLog viewMode = iota
	viewDetail
)

type historyMsg struct{ err error }
type moreHistoryMsg struct {
	added bool
	err   error
}
type detailMsg struct {
	show *vcs.ShowOutput
	err  error
}
type commandMsg struct {
	result vcs.CommandResult
	err    error
}
type repoChangedMsg struct{}

type model struct {
	svc *vcs.Service

	entries []*vcs.Entry
	rows    []graph.Row

	selected int
	offset   int
	width    int
	height   int

	view        viewMode
	detail      *vcs.ShowOutput
	detailLines []string
	detailTop   int

	modal *pendingAction
	input *inputState

	status    string
	statusErr bool

	loading     bool
	loadingMore bool

	palette colorPalette
	styles  styleSet
	syntax  bool
}

func newModel(opts Options) *model {
	palette := paletteFor(opts.Theme)
	return &model{
		svc:     opts.Service,
		loading: true,
		palette: palette,
		styles:  newStyles(palette),
		syntax:  opts.Syntax,
	}
}

func (m *model) Init() tea.Cmd {
	return m.reloadCmd()
}

func (m *model) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		return historyMsg{err: m.svc.Reload(context.Background())}
	}
}

func (m *model) loadMoreCmd() tea.Cmd {
	return func() tea.Msg {
		added, err := m.svc.LoadMore(context.Background())
		return moreHistoryMsg{added: added, err: err}
	}
}

func (m *model) detailCmd(revision string) tea.Cmd {
	return func() tea.Msg {
		show, err := m.svc.Show(context.Background(), revision)
		return detailMsg{show: show, err: err}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureVisible()
		return m, nil

	case historyMsg:
		m.loading = false
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.entries, m.rows = m.svc.Entries()
		m.clampSelection()
		return m, nil

	case moreHistoryMsg:
		m.loadingMore = false
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		if msg.added {
			m.entries, m.rows = m.svc.Entries()
			m.clampSelection()
		}
		return m, nil

	case detailMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.openDetail(msg.show)
		return m, nil

	case commandMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.setStatus(msg.result.Message, !msg.result.Success)
		if msg.result.Success {
			return m, m.reloadCmd()
		}
		return m, nil

	case repoChangedMsg:
		return m, m.reloadCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal dialog takes highest priority, then input mode.
	if m.modal != nil {
		return m.handleModalKey(msg)
	}
	if m.input != nil {
		return m.handleInputKey(msg)
	}
	if m.view == viewDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleLogKey(msg)
}

func (m *model) handleLogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		m.moveSelection(1)
		return m, m.maybeLoadMore()
	case "k", "up":
		m.moveSelection(-1)
	case "g", "home":
		m.selected = 0
		m.ensureVisible()
	case "G", "end":
		m.selected = len(m.entries) - 1
		m.clampSelection()
		return m, m.maybeLoadMore()
	case "ctrl+d", "pgdown":
		m.moveSelection(pageJump)
		return m, m.maybeLoadMore()
	case "ctrl+u", "pgup":
		m.moveSelection(-pageJump)
	case "enter":
		if entry := m.selectedEntry(); entry != nil {
			return m, m.detailCmd(entry.ChangeID)
		}
	case "n":
		return m.runMutation("new", func(ctx context.Context, mut vcs.Mutator) (vcs.CommandResult, error) {
			return mut.New(ctx, m.selectedChangeID())
		})
	case "N":
		m.startInput(inputNewWithMessage, "Enter message (empty for no message)...")
	case "e":
		return m.runMutation("edit", func(ctx context.Context, mut vcs.Mutator) (vcs.CommandResult, error) {
			return mut.Edit(ctx, m.selectedChangeID())
		})
	case "d":
		m.startInput(inputDescribe, "Enter commit message...")
	case "b":
		m.startInput(inputBookmarkSet, "Enter bookmark name...")
	case "a":
		m.confirm(actionAbandon)
	case "s":
		m.confirm(actionSquash)
	case "f":
		return m.runMutation("git fetch", func(ctx context.Context, mut vcs.Mutator) (vcs.CommandResult, error) {
			return mut.GitFetch(ctx)
		})
	case "p":
		m.confirm(actionGitPush)
	case "u":
		m.confirm(actionUndo)
	}
	return m, nil
}

func (m *model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.view = viewLog
		m.detail = nil
		m.detailLines = nil
		m.detailTop = 0
	case "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		m.scrollDetail(1)
	case "k", "up":
		m.scrollDetail(-1)
	case "ctrl+d", "pgdown":
		m.scrollDetail(pageJump)
	case "ctrl+u", "pgup":
		m.scrollDetail(-pageJump)
	case "g", "home":
		m.detailTop = 0
	case "G", "end":
		m.detailTop = max(0, len(m.detailLines)-m.contentHeight())
	}
	return m, nil
}

// runMutation dispatches a mutating command, or reports that the source
// cannot mutate (native git repositories are read-only).
func (m *model) runMutation(name string, run func(context.Context, vcs.Mutator) (vcs.CommandResult, error)) (tea.Model, tea.Cmd) {
	mut := m.svc.Mutator()
	if mut == nil {
		m.setStatus("source is read-only; "+name+" unavailable", true)
		return m, nil
	}
	return m, func() tea.Msg {
		result, err := run(context.Background(), mut)
		return commandMsg{result: result, err: err}
	}
}

func (m *model) selectedEntry() *vcs.Entry {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return nil
	}
	return m.entries[m.selected]
}

func (m *model) selectedChangeID() string {
	if entry := m.selectedEntry(); entry != nil {
		return entry.ChangeID
	}
	return "@"
}

func (m *model) moveSelection(delta int) {
	m.selected += delta
	m.clampSelection()
}

func (m *model) clampSelection() {
	if m.selected >= len(m.entries) {
		m.selected = len(m.entries) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.ensureVisible()
}

func (m *model) ensureVisible() {
	visible := m.contentHeight()
	if visible <= 0 {
		return
	}
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+visible {
		m.offset = m.selected - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// maybeLoadMore requests the next history page when the selection is
// close to the end of the loaded window.
func (m *model) maybeLoadMore() tea.Cmd {
	if m.loadingMore || !m.svc.HasMore() {
		return nil
	}
	if len(m.entries)-m.selected > loadMoreThreshold {
		return nil
	}
	m.loadingMore = true
	return m.loadMoreCmd()
}

func (m *model) openDetail(show *vcs.ShowOutput) {
	m.detail = show
	m.detailTop = 0
	m.detailLines = m.renderDetailLines(show)
	m.view = viewDetail
}

func (m *model) scrollDetail(delta int) {
	m.detailTop += delta
	limit := max(0, len(m.detailLines)-m.contentHeight())
	if m.detailTop > limit {
		m.detailTop = limit
	}
	if m.detailTop < 0 {
		m.detailTop = 0
	}
}

func (m *model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// contentHeight is the list viewport: everything minus title and status.
func (m *model) contentHeight() int {
	return m.height - 2
}

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.titleLine())
	b.WriteString("\n")

	switch m.view {
	case viewDetail:
		m.writeDetail(&b)
	default:
		m.writeLog(&b)
	}

	b.WriteString(m.statusLine())
	return b.String()
}

func (m *model) titleLine() string {
	title := m.styles.title.Render("jjk-go")
	where := m.styles.dim.Render(m.svc.RepoPath())
	counter := ""
	if len(m.entries) > 0 {
		counter = m.styles.dim.Render(fmt.Sprintf(" %d/%d", m.selected+1, len(m.entries)))
	}
	return clipLine(title+" "+where+counter, m.width)
}

func (m *model) writeLog(b *strings.Builder) {
	visible := m.contentHeight()
	if m.loading {
		b.WriteString(m.styles.dim.Render("loading history..."))
		b.WriteString(strings.Repeat("\n", max(1, visible)))
		return
	}
	for i := 0; i < visible; i++ {
		idx := m.offset + i
		if idx < len(m.entries) {
			b.WriteString(m.renderLogLine(m.entries[idx], m.rows[idx], idx == m.selected))
		} else if idx == len(m.entries) && m.loadingMore {
			b.WriteString(m.styles.dim.Render("loading more..."))
		}
		b.WriteString("\n")
	}
}

func (m *model) writeDetail(b *strings.Builder) {
	visible := m.contentHeight()
	for i := 0; i < visible; i++ {
		idx := m.detailTop + i
		if idx < len(m.detailLines) {
			b.WriteString(clipLine(m.detailLines[idx], m.width))
		}
		b.WriteString("\n")
	}
}

func (m *model) renderDetailLines(show *vcs.ShowOutput) []string {
	var lines []string
	lines = append(lines,
		m.styles.changeID.Render(show.ChangeID)+" "+m.styles.dim.Render(show.CommitID),
		m.styles.author.Render(show.Author)+" "+m.styles.timestamp.Render(show.Timestamp),
	)
	if len(show.Bookmarks) > 0 {
		lines = append(lines, m.styles.bookmark.Render("["+strings.Join(show.Bookmarks, ",")+"]"))
	}
	lines = append(lines, "")
	for _, line := range strings.Split(strings.TrimRight(show.Description, "\n"), "\n") {
		lines = append(lines, m.styles.description.Render(line))
	}
	if len(show.Summary) > 0 {
		lines = append(lines, "")
		for _, entry := range show.Summary {
			style := m.styles.description
			switch entry.Status {
			case vcs.DiffAdded:
				style = m.styles.diffAdd
			case vcs.DiffDeleted:
				style = m.styles.diffDel
			}
			lines = append(lines, style.Render(entry.Status.String()+" "+entry.Path))
		}
	}
	if show.Diff != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(strings.TrimRight(m.renderDiff(show.Diff), "\n"), "\n")...)
	}
	return lines
}

func (m *model) statusLine() string {
	if m.modal != nil {
		return clipLine(m.styles.prompt.Render(m.modal.confirmMessage()+" [y/N]"), m.width)
	}
	if m.input != nil {
		return clipLine(m.styles.prompt.Render(m.input.prompt+" ")+m.input.text()+"█", m.width)
	}
	if m.status != "" {
		if m.statusErr {
			return clipLine(m.styles.statusErr.Render(m.status), m.width)
		}
		return clipLine(m.styles.statusOK.Render(m.status), m.width)
	}
	help := "j/k move  ⏎ detail  n/e/d new/edit/describe  a/s abandon/squash  f/p fetch/push  u undo  q quit"
	return clipLine(m.styles.dim.Render(help), m.width)
}
