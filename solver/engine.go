package solver

import (
	"context"

	"github.com/crystacean/lattice/bitlattice"
)

// searchEngine holds all search data, mirroring tsp.bbEngine: explicit
// fields instead of captured closures, so state and policy stay visible.
type searchEngine struct {
	bl  *bitlattice.BitLattice
	ctx context.Context

	findAll        bool
	maxSinglets    int
	maxDepth       int
	forbiddenByTop map[int][]bitlattice.Mask

	solutions []Solution
	cancelled bool
	stop      bool // set once a single solution is found and findAll==false
}

// Solve is the public entrypoint for backtracking enumeration. It prepares
// the engine, runs the DFS from the empty selection, and returns every
// solution found (or just the first, if opts.FindAll is false).
func Solve(bl *bitlattice.BitLattice, opts Options) (Result, error) {
	if bl == nil {
		return Result{}, ErrNilLattice
	}
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	e := &searchEngine{
		bl:          bl,
		ctx:         ctx,
		findAll:     opts.FindAll,
		maxSinglets: bl.MaxSinglets,
		maxDepth:    opts.MaxDepth,
	}
	e.forbiddenByTop = indexByTopBit(opts.ForbiddenMasks)

	chosen := bitlattice.NewMask(len(bl.Sites))
	bound := bitlattice.NewMask(bl.N)
	e.dfs(bound, chosen, 0, 0, 0)

	return Result{Solutions: e.solutions, Cancelled: e.cancelled}, nil
}

// indexByTopBit groups forbidden masks by their highest set bit, so the
// per-step check in dfs only re-examines masks that could have just been
// completed by the site most recently added — spec.md §4.3's "for every F
// whose highest bit index equals the just-added site index" rule. Because
// sites are always added in strictly increasing index order along any DFS
// path (next_start is monotonic), the just-added site is always the
// running maximum, so this index is exact, not an approximation.
func indexByTopBit(masks []bitlattice.Mask) map[int][]bitlattice.Mask {
	out := make(map[int][]bitlattice.Mask, len(masks))
	for _, m := range masks {
		bits := m.Bits()
		if len(bits) == 0 {
			continue
		}
		top := bits[len(bits)-1]
		out[top] = append(out[top], m)
	}
	return out
}

// dfs implements spec.md §4.5's per-step algorithm.
func (e *searchEngine) dfs(bound, chosen bitlattice.Mask, singlesUsed, nextStart, depth int) {
	if e.stop || e.cancelled {
		return
	}
	select {
	case <-e.ctx.Done():
		e.cancelled = true
		return
	default:
	}

	// Step 1: complete assignment.
	if bound.Equal(e.bl.Full) {
		e.solutions = append(e.solutions, Solution{Mask: chosen.Clone()})
		if !e.findAll {
			e.stop = true
		}
		return
	}

	if e.maxDepth > 0 && depth >= e.maxDepth {
		return // depth-bounded cutoff (spec.md §11 supplement); branch dies without emitting.
	}

	// Step 2: lowest unbound canonical bit.
	p, ok := lowestUnset(bound, e.bl.N)
	if !ok {
		return // should not happen given Step 1's check, but guards against stale masks.
	}

	// Step 2 (cont.): every site s >= nextStart whose attach mask contains p.
	for _, s := range e.candidatesFor(p, nextStart) {
		if e.stop || e.cancelled {
			return
		}
		if e.bl.Admissible != nil && !e.bl.Admissible.Test(uint(s)) {
			continue
		}
		if e.bl.Attach[s].Intersects(bound) {
			continue // conflict
		}
		isSingle := e.bl.IsSingle(s)
		if isSingle && singlesUsed == e.maxSinglets {
			continue
		}

		nextChosen := chosen.Clone()
		nextChosen.Set(uint(s))
		if e.completesForbidden(nextChosen, s) {
			continue
		}

		nextBound := bound.Union(e.bl.Attach[s])
		nextSingles := singlesUsed
		if isSingle {
			nextSingles++
		}
		e.dfs(nextBound, nextChosen, nextSingles, s+1, depth+1)
	}
}

// candidatesFor returns every site index >= nextStart whose attach mask
// contains canonical bit p, in ascending order (Tri-before-Mid-before-
// Single falls out of the BitLattice's own ordering).
func (e *searchEngine) candidatesFor(p uint, nextStart int) []int {
	var out []int
	for s := nextStart; s < len(e.bl.Sites); s++ {
		if e.bl.Attach[s].Test(p) {
			out = append(out, s)
		}
	}
	return out
}

// completesForbidden reports whether chosen (with site s just added)
// contains any forbidden clique whose highest-indexed site is s.
func (e *searchEngine) completesForbidden(chosen bitlattice.Mask, s int) bool {
	for _, f := range e.forbiddenByTop[s] {
		if chosen.Contains(f) {
			return true
		}
	}
	return false
}

// lowestUnset returns the smallest index in [0,n) not set in bound.
func lowestUnset(bound bitlattice.Mask, n int) (uint, bool) {
	for i := 0; i < n; i++ {
		if !bound.Test(uint(i)) {
			return uint(i), true
		}
	}
	return 0, false
}
