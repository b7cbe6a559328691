package jj

import (
	"context"
	"fmt"

	"github.com/thiagokokada/jjk-go/internal/vcs"
)

// Source reads and mutates history through the jj executable.
type Source struct {
	repo   Repo
	runner *Runner
}

// Open discovers the jj repository containing path.
func Open(path string) (*Source, error) {
	repo, ok := FindRepo(path)
	if !ok {
		return nil, fmt.Errorf("no jj repository found at or above %s", path)
	}
	runner := NewRunner(repo.Root)
	if !runner.IsAvailable() {
		return nil, ErrNotInstalled
	}
	return &Source{repo: repo, runner: runner}, nil
}

func (s *Source) RepoPath() string {
	return s.repo.Root
}

// Colocated reports whether the repository also has a .git directory.
func (s *Source) Colocated() bool {
	return s.repo.Colocated
}

func (s *Source) Snapshot(ctx context.Context, limit int) ([]*vcs.Entry, error) {
	return fetchLog(ctx, s.runner, limit)
}

func (s *Source) SnapshotAfter(ctx context.Context, afterChangeID string, limit int) ([]*vcs.Entry, error) {
	return fetchLogAfter(ctx, s.runner, afterChangeID, limit)
}

func (s *Source) Show(ctx context.Context, revision string) (*vcs.ShowOutput, error) {
	return fetchShow(ctx, s.runner, revision)
}

func (s *Source) New(ctx context.Context, parent string) (vcs.CommandResult, error) {
	return s.command(ctx, "jj new", "new", parent)
}

func (s *Source) NewWithMessage(ctx context.Context, parent, message string) (vcs.CommandResult, error) {
	return s.command(ctx, "jj new -m", "new", parent, "-m", message)
}

func (s *Source) Edit(ctx context.Context, revision string) (vcs.CommandResult, error) {
	return s.command(ctx, "jj edit", "edit", revision)
}

func (s *Source) Describe(ctx context.Context, revision, message string) (vcs.CommandResult, error) {
	return s.command(ctx, "jj describe", "describe", revision, "-m", message)
}

func (s *Source) Abandon(ctx context.Context, revision string) (vcs.CommandResult, error) {
	return s.command(ctx, "jj abandon", "abandon", revision)
}

func (s *Source) BookmarkSet(ctx context.Context, name, revision string) (vcs.CommandResult, error) {
	return s.command(ctx, "jj bookmark set", "bookmark", "set", name, "-r", revision)
}

func (s *Source) Squash(ctx context.Context, revision string) (vcs.CommandResult, error) {
	return s.command(ctx, "jj squash", "squash", "-r", revision)
}

func (s *Source) GitFetch(ctx context.Context) (vcs.CommandResult, error) {
	return s.command(ctx, "jj git fetch", "git", "fetch")
}

func (s *Source) GitPush(ctx context.Context) (vcs.CommandResult, error) {
	return s.command(ctx, "jj git push", "git", "push")
}

func (s *Source) Undo(ctx context.Context) (vcs.CommandResult, error) {
	return s.command(ctx, "jj undo", "undo")
}

func (s *Source) command(ctx context.Context, name string, args ...string) (vcs.CommandResult, error) {
	success, message := s.runner.runCommand(ctx, name, args...)
	return vcs.CommandResult{Command: name, Success: success, Message: message}, nil
}

var (
	_ vcs.Source  = (*Source)(nil)
	_ vcs.Mutator = (*Source)(nil)
)
