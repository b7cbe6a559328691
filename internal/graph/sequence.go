package graph

import "container/heap"

// Sequence reorders commits so every commit appears before any of its
// in-window parents. Among commits whose in-window children have all
// been emitted, the checked-out one wins, then the smallest original
// position. The result is a permutation of the input: records left
// unreachable by the traversal (a cycle, or ids that never decrement to
// zero) are appended at the end in their original order rather than
// dropped.
func Sequence(commits []Commit) []Commit {
	if len(commits) <= 1 {
		return commits
	}

	idxOf := make(map[string]int, len(commits))
	for i, c := range commits {
		idxOf[c.ID] = i
	}

	// childCount[i] = how many other records in the window name commit i
	// as a parent. Zero means no descendant is waiting: a head.
	childCount := make([]int, len(commits))
	for _, c := range commits {
		for _, p := range c.Parents {
			if pi, ok := idxOf[p]; ok {
				childCount[pi]++
			}
		}
	}

	ready := &commitQueue{}
	heap.Init(ready)
	for i, c := range commits {
		if childCount[i] == 0 {
			heap.Push(ready, queued{checkedOut: c.CheckedOut, index: i})
		}
	}

	out := make([]Commit, 0, len(commits))
	emitted := make([]bool, len(commits))
	for ready.Len() > 0 {
		next := heap.Pop(ready).(queued)
		out = append(out, commits[next.index])
		emitted[next.index] = true
		for _, p := range commits[next.index].Parents {
			pi, ok := idxOf[p]
			if !ok {
				continue
			}
			childCount[pi]--
			if childCount[pi] == 0 {
				heap.Push(ready, queued{checkedOut: commits[pi].CheckedOut, index: pi})
			}
		}
	}

	// Leftovers keep their relative input order.
	if len(out) < len(commits) {
		for i, c := range commits {
			if !emitted[i] {
				out = append(out, c)
			}
		}
	}
	return out
}

type queued struct {
	checkedOut bool
	index      int
}

// commitQueue pops the checked-out commit first, then the lowest
// original index.
type commitQueue []queued

func (q commitQueue) Len() int { return len(q) }

func (q commitQueue) Less(i, j int) bool {
	if q[i].checkedOut != q[j].checkedOut {
		return q[i].checkedOut
	}
	return q[i].index < q[j].index
}

func (q commitQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *commitQueue) Push(x any) { *q = append(*q, x.(queued)) }

func (q *commitQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
