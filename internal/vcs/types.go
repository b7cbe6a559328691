package vcs

import "errors"

// ErrUnsupported is returned by sources that cannot perform mutations
// (e.g. the read-only native git source).
var ErrUnsupported = errors.New("operation not supported by this source")

// Entry is one commit as shown in the log list.
type Entry struct {
	// ChangeID is the jj change id (short form). Native git sources use
	// the abbreviated commit hash.
	ChangeID string
	// CommitID is the full commit id, the stable key the layout engine
	// matches parents against.
	CommitID string
	// ParentIDs holds full parent commit ids in source order; the first
	// entry is the main-line parent.
	ParentIDs []string

	Author      string
	Timestamp   string
	Description string
	Bookmarks   []string

	WorkingCopy bool
	Immutable   bool
	Empty       bool
}

// GraphSymbol returns the node glyph for this entry.
func (e *Entry) GraphSymbol() string {
	switch {
	case e.WorkingCopy:
		return "@"
	case e.Immutable:
		return "◆"
	default:
		return "○"
	}
}

// CommandResult reports the outcome of a mutating command.
type CommandResult struct {
	Command string
	Success bool
	Message string
}

// DiffStatus classifies one changed file in a revision.
type DiffStatus uint8

const (
	DiffAdded DiffStatus = iota
	DiffModified
	DiffDeleted
	DiffRenamed
	DiffCopied
)

func (s DiffStatus) String() string {
	switch s {
	case DiffAdded:
		return "A"
	case DiffModified:
		return "M"
	case DiffDeleted:
		return "D"
	case DiffRenamed:
		return "R"
	case DiffCopied:
		return "C"
	}
	return "?"
}

// DiffEntry is one changed file from a revision summary.
type DiffEntry struct {
	Status DiffStatus
	Path   string
}

// ShowOutput is the detail view for a single revision.
type ShowOutput struct {
	ChangeID    string
	CommitID    string
	Author      string
	Timestamp   string
	Description string
	Bookmarks   []string
	Summary     []DiffEntry
	// Diff is the unified diff text, uncolored.
	Diff string
}
