// Package solver implements the backtracking DFS enumeration over a
// bitlattice.BitLattice described by spec.md §4.5: fail-first branching on
// the lowest unbound canonical point, static Tri-before-Mid-before-Single
// ordering, and bitset pruning via conflict and no-rings masks.
//
// The engine struct (searchEngine) mirrors tsp.bbEngine's design: explicit
// state fields instead of closures, so dependencies stay visible and hot
// loops stay predictable.
package solver

import (
	"context"
	"errors"

	"github.com/crystacean/lattice/bitlattice"
)

// Sentinel errors.
var (
	// ErrNilLattice indicates a nil *bitlattice.BitLattice was supplied.
	ErrNilLattice = errors.New("solver: bit lattice is nil")
)

// Options configures a Solve call.
type Options struct {
	// Ctx allows cooperative cancellation; checked between branches.
	// If nil, context.Background() is used (no cancellation).
	Ctx context.Context

	// FindAll toggles "first solution" (false) vs "all solutions" (true),
	// per spec.md §4.5.
	FindAll bool

	// ForbiddenMasks are no-rings (or other structural) forbidden-clique
	// masks from the filter package (spec.md §4.3): a partial solution is
	// rejected if it is a superset of any ForbiddenMasks entry.
	ForbiddenMasks []bitlattice.Mask

	// MaxDepth, if > 0, bounds the number of *generations* (site
	// selections) explored before the search gives up on that branch —
	// the depth-bounded generational knob from
	// original_source/findthosepoints.py's Solver.start_solve(depth=...),
	// preserved as an optional early-termination control distinct from
	// the DFS's natural depth bound (spec.md §11 supplement).
	MaxDepth int
}

// Solution is a bitset over site indices whose selected sites' attach
// masks union to the full lattice mask, pairwise disjoint (spec.md §3).
type Solution struct {
	Mask bitlattice.Mask
}

// Result is the outcome of a Solve call.
type Result struct {
	Solutions []Solution
	Cancelled bool
}

// Energy returns the tabulated ranking weight of a Solution against bl,
// spec.md §3/§8's 1.4*|singles| + 0.7*|mids| + 0.4*|tris|.
func (s Solution) Energy(bl *bitlattice.BitLattice) float64 {
	var total float64
	for _, idx := range s.Mask.Bits() {
		total += bl.Sites[idx].Kind.Energy()
	}
	return total
}
