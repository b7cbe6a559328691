package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thiagokokada/jjk-go/internal/vcs"
)

type actionKind int

const (
	actionAbandon actionKind = iota
	actionSquash
	actionGitPush
	actionUndo
)

// pendingAction is a destructive command waiting for y/N confirmation.
type pendingAction struct {
	kind     actionKind
	changeID string
	summary  string
}

func (a *pendingAction) confirmMessage() string {
	switch a.kind {
	case actionAbandon:
		return fmt.Sprintf("Abandon %s %q?", a.changeID, a.summary)
	case actionSquash:
		return fmt.Sprintf("Squash %s into its parent?", a.changeID)
	case actionGitPush:
		return "Push all bookmarks to the remote?"
	case actionUndo:
		return "Undo the last operation?"
	}
	return "Proceed?"
}

func (m *model) confirm(kind actionKind) {
	entry := m.selectedEntry()
	if entry == nil && kind != actionGitPush && kind != actionUndo {
		return
	}
	action := &pendingAction{kind: kind}
	if entry != nil {
		action.changeID = entry.ChangeID
		action.summary = firstWords(entry.Description, 40)
	}
	m.modal = action
}

func (m *model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.modal
	switch msg.String() {
	case "y", "Y":
		m.modal = nil
		return m.dispatchAction(action)
	case "n", "N", "esc", "q":
		m.modal = nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) dispatchAction(action *pendingAction) (tea.Model, tea.Cmd) {
	switch action.kind {
	case actionAbandon:
		return m.runMutation("abandon", func(ctx context.Context, mut vcs.Mutator) (vcs.CommandResult, error) {
			return mut.Abandon(ctx, action.changeID)
		})
	case actionSquash:
		return m.runMutation("squash", func(ctx context.Context, mut vcs.Mutator) (vcs.CommandResult, error) {
			return mut.Squash(ctx, action.changeID)
		})
	case actionGitPush:
		return m.runMutation("git push", func(ctx context.Context, mut vcs.Mutator) (vcs.CommandResult, error) {
			return mut.GitPush(ctx)
		})
	case actionUndo:
		return m.runMutation("undo", func(ctx context.Context, mut vcs.Mutator) (vcs.CommandResult, error) {
			return mut.Undo(ctx)
		})
	}
	return m, nil
}

type inputKind int

const (
	inputDescribe inputKind = iota
	inputNewWithMessage
	inputBookmarkSet
)

// inputState is a one-line text prompt shown in the status bar.
type inputState struct {
	kind     inputKind
	prompt   string
	changeID string
	buf      []rune
}

func (in *inputState) text() string { return string(in.buf) }

func (m *model) startInput(kind inputKind, prompt string) {
	m.input = &inputState{
		kind:     kind,
		prompt:   prompt,
		changeID: m.selectedChangeID(),
	}
}

func (m *model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := m.input
	switch msg.Type {
	case tea.KeyEsc:
		m.input = nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.input = nil
		return m.submitInput(in)
	case tea.KeyBackspace:
		if len(in.buf) > 0 {
			in.buf = in.buf[:len(in.buf)-1]
		}
	case tea.KeySpace:
		in.buf = append(in.buf, ' ')
	case tea.KeyRunes:
		in.buf = append(in.buf, msg.Runes...)
	}
	return m, nil
}

func (m *model) submitInput(in *inputState) (tea.Model, tea.Cmd) {
	value := in.text()
	switch in.kind {
	case inputDescribe:
		if value == "" {
			return m, nil
		}
		return m.runMutation("describe", func(ctx context.Context, mut vcs.Mutator) (vcs.CommandResult, error) {
			return mut.Describe(ctx, in.changeID, value)
		})
	case inputNewWithMessage:
		return m.runMutation("new", func(ctx context.Context, mut vcs.Mutator) (vcs.CommandResult, error) {
			if value == "" {
				return mut.New(ctx, in.changeID)
			}
			return mut.NewWithMessage(ctx, in.changeID, value)
		})
	case inputBookmarkSet:
		if value == "" {
			return m, nil
		}
		return m.runMutation("bookmark set", func(ctx context.Context, mut vcs.Mutator) (vcs.CommandResult, error) {
			return mut.BookmarkSet(ctx, value, in.changeID)
		})
	}
	return m, nil
}

func firstWords(s string, limit int) string {
	s, _, _ = strings.Cut(s, "\n")
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit]) + "…"
	}
	return s
}
