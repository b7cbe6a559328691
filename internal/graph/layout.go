package graph

// BuildRows lays out one row per commit. Commits must already be in
// display order (children before parents, see Sequence); a violated
// order still produces a row per commit, just a misleading picture.
//
// The returned slice has the same length and order as commits.
func BuildRows(commits []Commit) []Row {
	idxOf := make(map[string]int, len(commits))
	for i, c := range commits {
		idxOf[c.ID] = i
	}

	// Open lanes, left to right. Each slot holds the id of the commit
	// that will close (define) that lane.
	var lanes []string
	rows := make([]Row, 0, len(commits))

	for _, commit := range commits {
		id := commit.ID

		// Locate this commit's lane, or open one at the left for a
		// fresh head no descendant in the window is waiting on.
		nodeLane := laneIndex(lanes, id)
		if nodeLane == -1 {
			lanes = insertLane(lanes, 0, id)
			nodeLane = 0
		}

		// Lane count after node insertion but before parent updates.
		// This decides which lanes draw vertical continuations.
		laneCountForRender := len(lanes)

		// Duplicate slots to the right mean other commits in the window
		// already named this commit as parent: a convergence.
		var dupLanes []int
		for i := nodeLane + 1; i < len(lanes); i++ {
			if lanes[i] == id {
				dupLanes = append(dupLanes, i)
			}
		}

		// Parents outside the window end the branch here, which is the
		// normal case at a pagination boundary. First in-window parent
		// continues the lane, the rest split off new lanes.
		var parents []string
		for _, p := range commit.Parents {
			if _, ok := idxOf[p]; ok {
				parents = append(parents, p)
			}
		}
		splitCount := 0
		if len(parents) > 0 {
			splitCount = len(parents) - 1
		}

		if len(parents) > 0 {
			lanes[nodeLane] = parents[0]
			for k, p := range parents[1:] {
				lanes = insertLane(lanes, nodeLane+1+k, p)
			}
		} else if nodeLane < len(lanes) {
			// Root commit, or every parent falls outside the window.
			lanes = removeLane(lanes, nodeLane)
		}

		// The duplicates were located before the inserts above shifted
		// everything to their right; correct the recorded positions by
		// the insert count, then drop them right to left.
		convergeEndpoints := make([]int, len(dupLanes))
		for i, d := range dupLanes {
			convergeEndpoints[i] = d + splitCount
		}
		for i := len(convergeEndpoints) - 1; i >= 0; i-- {
			if idx := convergeEndpoints[i]; idx < len(lanes) {
				lanes = removeLane(lanes, idx)
			}
		}

		activeLaneCount := len(lanes)

		var splitEndpoints []int
		for k := 1; k <= splitCount; k++ {
			splitEndpoints = append(splitEndpoints, nodeLane+k)
		}

		laneCount := max(activeLaneCount, nodeLane+1)
		for _, e := range splitEndpoints {
			laneCount = max(laneCount, e+1)
		}
		for _, e := range convergeEndpoints {
			laneCount = max(laneCount, e+1)
		}

		cells := make([]Cell, laneCount)
		for lane := range cells {
			left := glyphBlank
			if lane < laneCountForRender {
				left = glyphVertical
			}
			cells[lane] = laneCell(lane, left, glyphBlank)
		}

		if nodeLane < len(cells) {
			cells[nodeLane].Left = commit.Symbol()
			cells[nodeLane].KindLeft = NodeKind(commit.CheckedOut, commit.Immutable)
		}

		drawHorizontals(cells, nodeLane, laneCountForRender, splitEndpoints, convergeEndpoints)

		rows = append(rows, Row{
			Cells:           cells,
			NodeLane:        nodeLane,
			ActiveLaneCount: activeLaneCount,
		})
	}

	return rows
}

// drawHorizontals connects the node to its split and converge endpoints
// on the right. Endpoint corners override whatever the pass drew first.
func drawHorizontals(cells []Cell, nodeLane, laneCountForRender int, splitEndpoints, convergeEndpoints []int) {
	target := -1
	for _, e := range splitEndpoints {
		target = max(target, e)
	}
	for _, e := range convergeEndpoints {
		target = max(target, e)
	}
	if target <= nodeLane || nodeLane >= len(cells) {
		return
	}

	// Node cell carries the horizontal line on its right half.
	cells[nodeLane].Right = glyphHorizontal

	for lane := nodeLane + 1; lane <= target && lane < len(cells); lane++ {
		// Lanes that were active at render time keep their vertical and
		// show a crossing; fresh columns get a plain horizontal.
		if lane < laneCountForRender {
			cells[lane].Left = glyphCross
		} else {
			cells[lane].Left = glyphHorizontal
		}
		if lane == target {
			cells[lane].Right = glyphBlank
		} else {
			cells[lane].Right = glyphHorizontal
		}
	}

	for _, lane := range splitEndpoints {
		if lane < len(cells) {
			cells[lane].Left = glyphBranch
		}
	}
	for _, lane := range convergeEndpoints {
		if lane < len(cells) {
			cells[lane].Left = glyphMerge
		}
	}
}

func laneIndex(lanes []string, id string) int {
	for i, l := range lanes {
		if l == id {
			return i
		}
	}
	return -1
}

func insertLane(lanes []string, pos int, id string) []string {
	if pos > len(lanes) {
		pos = len(lanes)
	}
	lanes = append(lanes, "")
	copy(lanes[pos+1:], lanes[pos:])
	lanes[pos] = id
	return lanes
}

func removeLane(lanes []string, pos int) []string {
	return append(lanes[:pos], lanes[pos+1:]...)
}
