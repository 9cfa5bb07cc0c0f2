package filter

import (
	"fmt"
	"sort"

	"github.com/crystacean/lattice/bitlattice"
	"github.com/crystacean/lattice/lattice"
	"github.com/crystacean/lattice/neighbor"
	"github.com/crystacean/lattice/site"
)

// ForbiddenRingMasks implements spec.md §4.3: detect every minimal 4-, 5-,
// and 6-cycle of canonical lattice points, and for each cycle C emit a
// forbidden-clique bitmask over bl's site indices — every Mid/Tri site
// whose attachment set is entirely contained in C.
//
// The neighbor relation is first projected onto dense canonical indices
// (ghost endpoints collapse onto their canonical points, self-edges drop
// out). Rings that cross the periodic boundary only close in this
// projected graph — in the raw point graph the path ends at a ghost image
// of its start, never back at the start itself.
//
// Cycle search is grounded on algorithms.DFS's walker style (a small struct
// carrying mutable search state, recursing with an explicit visited set)
// generalized from "visit every vertex once" to "enumerate simple cycles up
// to a bounded length": at each vertex only neighbors with a larger index
// than the cycle's start are explored, and a closing cycle is recorded only
// when walked in one of its two directions, so each cycle is discovered
// exactly once, from its lowest-indexed point.
func ForbiddenRingMasks(set *lattice.Set, rel *neighbor.Relation, bl *bitlattice.BitLattice) ([]bitlattice.Mask, error) {
	n := set.NumCanonical()
	if n < 4 {
		return nil, ErrTooFewPoints
	}
	adj := projectCanonical(set, rel)

	var cycles [][]int
	for start := 0; start < n; start++ {
		w := &ringWalker{adj: adj, start: start, visited: map[int]bool{start: true}}
		w.path = []int{start}
		w.dfs(start, 1)
		cycles = append(cycles, w.found...)
	}

	var masks []bitlattice.Mask
	seen := make(map[string]bool)
	for _, cycle := range cycles {
		in := make(map[int]bool, len(cycle))
		for _, c := range cycle {
			in[c] = true
		}

		var m bitlattice.Mask
		any := false
		for idx, s := range bl.Sites {
			if s.Kind == site.Single {
				continue
			}
			if attachWithin(s.Attach, in) {
				m.Set(uint(idx))
				any = true
			}
		}
		if !any {
			continue
		}
		key := fmt.Sprint(m.Bits())
		if seen[key] {
			continue
		}
		seen[key] = true
		masks = append(masks, m)
	}
	return masks, nil
}

// projectCanonical collapses rel onto dense canonical indices: each raw
// pair maps its endpoints through Point.Canonical, degenerate self-edges
// (a point and its own periodic image) and duplicate projections drop out.
func projectCanonical(set *lattice.Set, rel *neighbor.Relation) [][]int {
	pts := set.Points()
	n := set.NumCanonical()
	adj := make([][]int, n)
	seen := make(map[[2]int]bool, len(rel.Pairs))
	for _, pr := range rel.Pairs {
		i, j := pr[0], pr[1]
		if i >= len(pts) || j >= len(pts) {
			continue
		}
		ci, cj := pts[i].Canonical(), pts[j].Canonical()
		if ci == cj {
			continue
		}
		if ci > cj {
			ci, cj = cj, ci
		}
		key := [2]int{ci, cj}
		if seen[key] {
			continue
		}
		seen[key] = true
		adj[ci] = append(adj[ci], cj)
		adj[cj] = append(adj[cj], ci)
	}
	for i := range adj {
		sort.Ints(adj[i])
	}
	return adj
}

func attachWithin(attach []int, in map[int]bool) bool {
	for _, a := range attach {
		if !in[a] {
			return false
		}
	}
	return true
}

const maxRingLen = 6
const minRingLen = 4

// ringWalker enumerates simple cycles of length [minRingLen, maxRingLen]
// through start, where every cycle vertex other than start has a larger
// index than start (canonical: a cycle is only found once, via its
// lowest-indexed member).
type ringWalker struct {
	adj     [][]int
	start   int
	path    []int
	visited map[int]bool
	found   [][]int
}

func (w *ringWalker) dfs(current, depth int) {
	for _, nbr := range w.adj[current] {
		if nbr == w.start {
			if depth >= minRingLen && w.path[1] < w.path[len(w.path)-1] {
				cycle := make([]int, len(w.path))
				copy(cycle, w.path)
				w.found = append(w.found, cycle)
			}
			continue
		}
		if depth == maxRingLen {
			continue // path is full: it may only close back to start, not grow
		}
		if nbr < w.start || w.visited[nbr] {
			continue
		}
		w.visited[nbr] = true
		w.path = append(w.path, nbr)
		w.dfs(nbr, depth+1)
		w.path = w.path[:len(w.path)-1]
		w.visited[nbr] = false
	}
}
