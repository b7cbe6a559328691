package vcs

import "context"

// Source abstracts access to repository history.
//
// The default implementation shells out to the jj executable; a native
// go-git implementation covers plain git repositories without changing
// callers.
type Source interface {
	RepoPath() string

	// Snapshot fetches the newest window of history. limit <= 0 means no
	// limit.
	Snapshot(ctx context.Context, limit int) ([]*Entry, error)
	// SnapshotAfter fetches the next page of history strictly older than
	// the given change id.
	SnapshotAfter(ctx context.Context, afterChangeID string, limit int) ([]*Entry, error)

	// Show fetches the detail view for one revision.
	Show(ctx context.Context, revision string) (*ShowOutput, error)
}

// Mutator is implemented by sources that can change repository state.
type Mutator interface {
	New(ctx context.Context, parent string) (CommandResult, error)
	NewWithMessage(ctx context.Context, parent, message string) (CommandResult, error)
	Edit(ctx context.Context, revision string) (CommandResult, error)
	Describe(ctx context.Context, revision, message string) (CommandResult, error)
	Abandon(ctx context.Context, revision string) (CommandResult, error)
	BookmarkSet(ctx context.Context, name, revision string) (CommandResult, error)
	Squash(ctx context.Context, revision string) (CommandResult, error)
	GitFetch(ctx context.Context) (CommandResult, error)
	GitPush(ctx context.Context) (CommandResult, error)
	Undo(ctx context.Context) (CommandResult, error)
}
