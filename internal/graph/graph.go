// Package graph turns a window of commit records into a renderable
// branch/merge topology: one row per commit, lanes drawn with Unicode
// line characters.
//
// The package is pure: both Sequence and BuildRows recompute their output
// from the full input on every call, so callers that append more history
// simply re-run them over the whole accumulated slice.
package graph

// Commit is the minimal record the engine needs. Parents keeps the
// source order: the first entry is the main-line parent.
type Commit struct {
	ID         string
	Parents    []string
	CheckedOut bool
	Immutable  bool
}

// Symbol returns the node glyph for this commit.
func (c Commit) Symbol() rune {
	switch {
	case c.CheckedOut:
		return '@'
	case c.Immutable:
		return '◆'
	default:
		return '○'
	}
}

// CellKind tags the two halves of a Cell so rendering code can style
// lane connectors and the commit node independently.
type CellKind struct {
	// Node is true for the commit's own marker; Lane is only meaningful
	// when Node is false.
	Node       bool
	Lane       int
	CheckedOut bool
	Immutable  bool
}

// LaneKind builds the kind for a lane connector cell.
func LaneKind(lane int) CellKind {
	return CellKind{Lane: lane}
}

// NodeKind builds the kind for a commit node cell.
func NodeKind(checkedOut, immutable bool) CellKind {
	return CellKind{Node: true, CheckedOut: checkedOut, Immutable: immutable}
}

// Cell is a single two-character graph column. The split lets one lane
// show a vertical continuation on the left half while a horizontal
// branch line runs through the right half.
type Cell struct {
	Left      rune
	Right     rune
	KindLeft  CellKind
	KindRight CellKind
}

func laneCell(lane int, left, right rune) Cell {
	return Cell{
		Left:      left,
		Right:     right,
		KindLeft:  LaneKind(lane),
		KindRight: LaneKind(lane),
	}
}

// Row is the layout for one commit, in sequenced order.
type Row struct {
	// Cells is the graph column, one fixed-width 2-character cell per lane.
	Cells []Cell
	// NodeLane is the lane holding the node symbol for this row.
	NodeLane int
	// ActiveLaneCount is the number of lanes still open after this row.
	// Callers use it to decide which lanes draw vertical continuations.
	ActiveLaneCount int
}

// Glyph alphabet. Fixed: golden tests compare rendered rows verbatim.
const (
	glyphVertical   = '│'
	glyphHorizontal = '─'
	glyphCross      = '┼'
	glyphBranch     = '┐'
	glyphMerge      = '┘'
	glyphBlank      = ' '
)
