package graph

import (
	"reflect"
	"testing"
)

func ids(commits []Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.ID
	}
	return out
}

func TestSequenceEmptyAndSingle(t *testing.T) {
	if got := Sequence(nil); len(got) != 0 {
		t.Fatalf("sequencing nil returned %d commits", len(got))
	}
	single := []Commit{c("A")}
	if got := ids(Sequence(single)); !reflect.DeepEqual(got, []string{"A"}) {
		t.Fatalf("single commit sequence = %v", got)
	}
}

func TestSequenceChildrenBeforeParents(t *testing.T) {
	commits := []Commit{
		c("R"),
		c("B", "R"),
		c("A", "B"),
		c("C", "B"),
	}
	got := Sequence(commits)
	pos := make(map[string]int, len(got))
	for i, cm := range got {
		pos[cm.ID] = i
	}
	for _, cm := range commits {
		for _, p := range cm.Parents {
			pp, ok := pos[p]
			if !ok {
				continue
			}
			if pos[cm.ID] >= pp {
				t.Errorf("%s (pos %d) not before its parent %s (pos %d)", cm.ID, pos[cm.ID], p, pp)
			}
		}
	}
	if len(got) != len(commits) {
		t.Fatalf("sequence dropped commits: %d != %d", len(got), len(commits))
	}
}

func TestSequenceTieBreakByOriginalIndex(t *testing.T) {
	// A and C are both heads pointing at B; the earlier one wins.
	commits := []Commit{c("A", "B"), c("C", "B"), c("B", "D"), c("D")}
	got := ids(Sequence(commits))
	want := []string{"A", "C", "B", "D"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sequence = %v, want %v", got, want)
	}
}

func TestSequenceCheckedOutHeadFirst(t *testing.T) {
	// Input arrives with the merge head first, the way a raw log might.
	p := Commit{ID: "p", Parents: []string{"mpkx", "o"}}
	y := Commit{ID: "y", Parents: []string{"o"}, CheckedOut: true}
	o := Commit{ID: "o", Parents: []string{"mpkx"}}
	root := Commit{ID: "mpkx"}

	got := Sequence([]Commit{p, y, o, root})
	if got[0].ID != "y" {
		t.Fatalf("first sequenced commit = %s, want checked-out y", got[0].ID)
	}

	// The layout driven by the repaired order puts the checked-out head
	// alone at the top with no stray connectors.
	rows := RenderPlain(BuildRows(got))
	if rows[0] != "@" {
		t.Errorf("row 0 = %q, want %q", rows[0], "@")
	}
	if rows[1] != "○─┐" {
		t.Errorf("row 1 = %q, want %q", rows[1], "○─┐")
	}
}

func TestSequenceIdempotent(t *testing.T) {
	commits := []Commit{
		{ID: "y", Parents: []string{"o"}, CheckedOut: true},
		c("p", "m", "o"),
		c("o", "m"),
		c("m"),
	}
	once := Sequence(commits)
	twice := Sequence(once)
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Fatalf("resequencing changed order: %v != %v", ids(once), ids(twice))
	}
}

func TestSequenceCycleFallsBackToOriginalOrder(t *testing.T) {
	// A cycle never becomes ready; the fallback appends it as-is instead
	// of dropping it.
	commits := []Commit{c("H", "A"), c("A", "B"), c("B", "A")}
	got := ids(Sequence(commits))
	want := []string{"H", "A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("cycle fallback = %v, want %v", got, want)
	}
}

func TestSequenceMultipleCheckedOutDoesNotCrash(t *testing.T) {
	commits := []Commit{
		{ID: "A", Parents: []string{"C"}, CheckedOut: true},
		{ID: "B", Parents: []string{"C"}, CheckedOut: true},
		c("C"),
	}
	got := ids(Sequence(commits))
	// Ties between checked-out heads fall back to original index.
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sequence = %v, want %v", got, want)
	}
}

func TestSequenceParentsOutsideWindowAreHeads(t *testing.T) {
	commits := []Commit{c("B", "outside"), c("A", "B")}
	got := ids(Sequence(commits))
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sequence = %v, want %v", got, want)
	}
}
