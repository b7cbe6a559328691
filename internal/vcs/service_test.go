package vcs

import (
	"context"
	"fmt"
	"testing"
)

// fakeSource serves canned pages keyed by anchor change id.
type fakeSource struct {
	first []*Entry
	pages map[string][]*Entry
	calls int
}

func (f *fakeSource) RepoPath() string { return "/fake" }

func (f *fakeSource) Snapshot(ctx context.Context, limit int) ([]*Entry, error) {
	f.calls++
	return f.first, nil
}

func (f *fakeSource) SnapshotAfter(ctx context.Context, after string, limit int) ([]*Entry, error) {
	f.calls++
	return f.pages[after], nil
}

func (f *fakeSource) Show(ctx context.Context, revision string) (*ShowOutput, error) {
	return nil, fmt.Errorf("not implemented")
}

func entry(changeID, commitID string, parents ...string) *Entry {
	return &Entry{ChangeID: changeID, CommitID: commitID, ParentIDs: parents}
}

func TestServiceReloadSequencesEntries(t *testing.T) {
	// Raw order has the checked-out head second; the service repairs it.
	working := &Entry{ChangeID: "yy", CommitID: "Y", ParentIDs: []string{"O"}, WorkingCopy: true}
	src := &fakeSource{first: []*Entry{
		entry("pp", "P", "M", "O"),
		working,
		entry("oo", "O", "M"),
		entry("mm", "M"),
	}}
	svc := NewService(src, 4)
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	entries, rows := svc.Entries()
	if len(entries) != 4 || len(rows) != 4 {
		t.Fatalf("got %d entries, %d rows, want 4 each", len(entries), len(rows))
	}
	if entries[0].ChangeID != "yy" {
		t.Errorf("first entry = %s, want the working copy", entries[0].ChangeID)
	}
	for i, e := range entries {
		if rows[i].NodeLane >= len(rows[i].Cells) {
			t.Errorf("row %d (%s): node lane %d outside %d cells", i, e.ChangeID, rows[i].NodeLane, len(rows[i].Cells))
		}
	}
}

func TestServiceLoadMoreAppendsAndRecomputes(t *testing.T) {
	src := &fakeSource{
		first: []*Entry{
			entry("aa", "A", "B"),
			entry("bb", "B", "C"),
		},
		pages: map[string][]*Entry{
			"bb": {entry("cc", "C", "D")},
		},
	}
	svc := NewService(src, 2)
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if !svc.HasMore() {
		t.Fatal("full first page should leave HasMore true")
	}

	added, err := svc.LoadMore(context.Background())
	if err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	if !added {
		t.Fatal("LoadMore reported nothing added")
	}
	entries, rows := svc.Entries()
	if len(entries) != 3 || len(rows) != 3 {
		t.Fatalf("after LoadMore: %d entries, %d rows", len(entries), len(rows))
	}
	// Short page flips HasMore off.
	if svc.HasMore() {
		t.Error("short page should exhaust HasMore")
	}
	// C's parent D is outside the window; its lane just ends.
	if rows[2].ActiveLaneCount != 0 {
		t.Errorf("trailing active lanes = %d, want 0", rows[2].ActiveLaneCount)
	}
}

func TestServiceLoadMoreExhausted(t *testing.T) {
	src := &fakeSource{first: []*Entry{entry("aa", "A")}}
	svc := NewService(src, 5)
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if svc.HasMore() {
		t.Fatal("partial first page should not report more")
	}
	added, err := svc.LoadMore(context.Background())
	if err != nil || added {
		t.Fatalf("LoadMore on exhausted window = (%v, %v)", added, err)
	}
	if src.calls != 1 {
		t.Errorf("exhausted LoadMore still hit the source (%d calls)", src.calls)
	}
}

// blockingSource parks SnapshotAfter until released so a Reload can be
// interleaved with an in-flight page fetch.
type blockingSource struct {
	fakeSource
	fetching chan struct{}
	release  chan struct{}
}

func (b *blockingSource) SnapshotAfter(ctx context.Context, after string, limit int) ([]*Entry, error) {
	close(b.fetching)
	<-b.release
	return b.fakeSource.SnapshotAfter(ctx, after, limit)
}

func TestServiceReloadInvalidatesInFlightLoadMore(t *testing.T) {
	src := &blockingSource{
		fakeSource: fakeSource{
			first: []*Entry{
				entry("aa", "A", "B"),
				entry("bb", "B", "C"),
			},
			pages: map[string][]*Entry{
				"bb": {entry("cc", "C")},
			},
		},
		fetching: make(chan struct{}),
		release:  make(chan struct{}),
	}
	svc := NewService(src, 2)
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	type result struct {
		added bool
		err   error
	}
	done := make(chan result, 1)
	go func() {
		added, err := svc.LoadMore(context.Background())
		done <- result{added, err}
	}()

	// Wait until the page fetch holds the old anchor, then replace the
	// window so that page refers to history no longer shown.
	<-src.fetching
	src.first = []*Entry{entry("cc", "C")}
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("concurrent Reload: %v", err)
	}
	close(src.release)

	got := <-done
	if got.err != nil {
		t.Fatalf("LoadMore: %v", got.err)
	}
	if got.added {
		t.Fatal("stale page must be dropped, not appended")
	}
	entries, _ := svc.Entries()
	seen := map[string]int{}
	for _, e := range entries {
		seen[e.CommitID]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("commit %s appears %d times in the window", id, n)
		}
	}
	if len(entries) != 1 || entries[0].ChangeID != "cc" {
		t.Fatalf("window = %d entries, want only the reloaded page", len(entries))
	}
}

func TestServiceMutatorNilForReadOnlySource(t *testing.T) {
	svc := NewService(&fakeSource{}, 0)
	if svc.Mutator() != nil {
		t.Fatal("read-only source produced a mutator")
	}
}
