// Package lattice defines the periodic 2D point model that anchors every
// downstream package: canonical lattice points and their ghost (periodic
// image) annotations. It intentionally carries no adjacency or site logic —
// those live in neighbor and site — mirroring how lvlath/core keeps Vertex
// and Edge free of traversal or matrix concerns.
package lattice

import (
	"errors"
)

// Sentinel errors for lattice construction. Matching core/types.go's style:
// package-qualified, lower-case messages, wrapped via internal/xerrors.
var (
	// ErrNonFinite indicates a point coordinate is NaN or +/-Inf.
	ErrNonFinite = errors.New("lattice: non-finite coordinate")

	// ErrGhostLinkInvalid indicates a ghost point's Link does not reference
	// a valid canonical point index.
	ErrGhostLinkInvalid = errors.New("lattice: ghost link references an invalid canonical index")

	// ErrGhostLinksGhost indicates a ghost point's Link points at another
	// ghost instead of a canonical point.
	ErrGhostLinksGhost = errors.New("lattice: ghost link must reference a canonical point")

	// ErrEmptySet indicates zero points were supplied to Build.
	ErrEmptySet = errors.New("lattice: point set is empty")
)

// Point is a single previous-layer attachment site in the 2D plane.
// Index is its position in the full sorted point slice (the sort key is
// 100*X + Y, per spec; ghosts interleave with canonical points there).
// Link is the dense canonical index used for all binding accounting: for a
// canonical point, its own position among canonical points in sorted
// order; for a ghost, the dense index of the point it images across the
// periodic boundary. Dense canonical indices run [0, NumCanonical)
// regardless of how many ghosts sort in between.
type Point struct {
	X, Y  float64
	Ghost bool
	Link  int
	Index int
}

// Canonical returns p's dense canonical index. All binding accounting must
// route through this, never Index, so that ghost bits collapse onto their
// canonical owner and attach masks stay within [0, NumCanonical).
func (p Point) Canonical() int {
	return p.Link
}

// Set is an immutable, canonically-ordered collection of Points. Once built
// it is never mutated; callers share it by reference, the way a built
// bitlattice.BitLattice is shared across the solver.
type Set struct {
	points    []Point
	numCanon  int
	linksByGh map[int]int // ghost Index -> dense canonical index, precomputed
}

// Points returns the full canonically-ordered slice (canonical and ghost
// points interleaved per the 100*X+Y sort key). Callers must not mutate it.
func (s *Set) Points() []Point { return s.points }

// NumCanonical returns N, the count of canonical points (spec.md's N).
func (s *Set) NumCanonical() int { return s.numCanon }

// Links exposes the ghost -> canonical adjacency as a plain map, the data
// underlying original_source/classes.py's plot_ghost_connections visual,
// without pulling in any plotting dependency (spec.md Non-goal: no 3D/plot).
func (s *Set) Links() map[int]int {
	out := make(map[int]int, len(s.linksByGh))
	for k, v := range s.linksByGh {
		out[k] = v
	}
	return out
}
