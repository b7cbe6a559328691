package vcs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/thiagokokada/jjk-go/internal/graph"
)

// DefaultPageSize is the number of entries fetched per history page.
const DefaultPageSize = 500

// Service holds the accumulated history window and keeps the sequenced
// entries and their graph rows in sync with it.
//
// Pages are append-only: LoadMore concatenates the next page to the
// record list and both the sequencer and the layout engine are re-run
// over the entire accumulated set. Patching lane state incrementally is
// not attempted; windows are bounded by the page size, so a full O(n)
// recomputation stays cheap and sidesteps splicing lane state onto an
// already-laid-out tail.
type Service struct {
	mu sync.Mutex

	source   Source
	pageSize int

	raw     []*Entry // as fetched, append-only
	entries []*Entry // sequenced, children before parents
	rows    []graph.Row
	hasMore bool
	// gen counts window replacements; a page fetched against an older
	// generation is stale and must not be appended.
	gen uint64
}

// NewService wraps a source with pagination and layout bookkeeping.
func NewService(source Source, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{source: source, pageSize: pageSize}
}

func (s *Service) RepoPath() string {
	return s.source.RepoPath()
}

// Reload replaces the accumulated window with a fresh first page.
func (s *Service) Reload(ctx context.Context) error {
	entries, err := s.source.Snapshot(ctx, s.pageSize)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = entries
	s.hasMore = len(entries) >= s.pageSize
	s.gen++
	s.recomputeLocked()
	return nil
}

// LoadMore appends the next page, anchored at the oldest loaded entry.
// It reports whether anything new was added.
func (s *Service) LoadMore(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if !s.hasMore || len(s.raw) == 0 {
		s.mu.Unlock()
		return false, nil
	}
	anchor := s.raw[len(s.raw)-1].ChangeID
	gen := s.gen
	s.mu.Unlock()

	page, err := s.source.SnapshotAfter(ctx, anchor, s.pageSize)
	if err != nil {
		return false, fmt.Errorf("load more history: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		// A Reload replaced the window while the fetch was in flight;
		// the page is anchored to history we no longer show.
		slog.Debug("dropping stale history page", slog.String("anchor", anchor))
		return false, nil
	}
	if len(page) == 0 {
		s.hasMore = false
		return false, nil
	}
	if len(page) < s.pageSize {
		s.hasMore = false
	}
	s.raw = append(s.raw, page...)
	s.recomputeLocked()
	slog.Debug("history extended",
		slog.String("anchor", anchor),
		slog.Int("added", len(page)),
		slog.Int("total", len(s.raw)),
	)
	return true, nil
}

// Entries returns the sequenced entries and their layout rows. Both
// slices share length and order; callers treat them as read-only.
func (s *Service) Entries() ([]*Entry, []graph.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries, s.rows
}

// HasMore reports whether another page may be available.
func (s *Service) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

// Len returns the number of loaded entries.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Service) Show(ctx context.Context, revision string) (*ShowOutput, error) {
	return s.source.Show(ctx, revision)
}

// Mutator returns the source's mutation interface, or nil for read-only
// sources.
func (s *Service) Mutator() Mutator {
	if m, ok := s.source.(Mutator); ok {
		return m
	}
	return nil
}

func (s *Service) recomputeLocked() {
	commits := make([]graph.Commit, len(s.raw))
	byID := make(map[string]*Entry, len(s.raw))
	for i, e := range s.raw {
		commits[i] = graph.Commit{
			ID:         e.CommitID,
			Parents:    e.ParentIDs,
			CheckedOut: e.WorkingCopy,
			Immutable:  e.Immutable,
		}
		byID[e.CommitID] = e
	}
	sequenced := graph.Sequence(commits)
	s.entries = make([]*Entry, len(sequenced))
	for i, c := range sequenced {
		s.entries[i] = byID[c.ID]
	}
	s.rows = graph.BuildRows(sequenced)
}
