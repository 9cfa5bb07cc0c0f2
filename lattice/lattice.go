package lattice

import (
	"math"
	"sort"

	"github.com/crystacean/lattice/internal/xerrors"
)

// pkgName is the xerrors package tag for this file's Wrap/Wrapf calls.
const pkgName = "lattice"

// RawPoint is the external collaborator's input shape (spec.md §6):
// {x, y, ghost, link}. Link is only meaningful when Ghost is true and must
// index another RawPoint in the same slice that is itself canonical.
type RawPoint struct {
	X, Y  float64
	Ghost bool
	Link  int
}

// Build validates and canonically orders raw points into a Set.
//
// Stage 1 (Validate): every coordinate finite; every ghost's Link points at
// a canonical RawPoint within range.
// Stage 2 (Order): sort by the spec's deterministic key 100*X + Y; this
// defines canonical indices (spec.md §4.1).
// Stage 3 (Finalize): assign full-slice Index values and dense canonical
// ids, and resolve every ghost Link to its canonical point's dense id.
//
// Complexity: O(n log n) for the sort, O(n) otherwise.
func Build(raw []RawPoint) (*Set, error) {
	if len(raw) == 0 {
		return nil, xerrors.Wrap(pkgName, "Build", ErrEmptySet)
	}

	// Stage 1: shape validation against the *input* (pre-sort) indices.
	for i, p := range raw {
		if !finite(p.X) || !finite(p.Y) {
			return nil, xerrors.Wrapf(pkgName, "Build", "point %d", ErrNonFinite, i)
		}
		if p.Ghost {
			if p.Link < 0 || p.Link >= len(raw) {
				return nil, xerrors.Wrapf(pkgName, "Build", "ghost %d link %d", ErrGhostLinkInvalid, i, p.Link)
			}
			if raw[p.Link].Ghost {
				return nil, xerrors.Wrapf(pkgName, "Build", "ghost %d links ghost %d", ErrGhostLinksGhost, i, p.Link)
			}
		}
	}

	// Track each input index's origin so Link can be remapped after sorting.
	type tagged struct {
		RawPoint
		origin int
	}
	tmp := make([]tagged, len(raw))
	for i, p := range raw {
		tmp[i] = tagged{RawPoint: p, origin: i}
	}
	sort.SliceStable(tmp, func(i, j int) bool {
		return sortKey(tmp[i].X, tmp[i].Y) < sortKey(tmp[j].X, tmp[j].Y)
	})

	// origin (pre-sort) index -> new (canonical-order) index.
	newIndexByOrigin := make(map[int]int, len(tmp))
	for newIdx, t := range tmp {
		newIndexByOrigin[t.origin] = newIdx
	}

	// Dense canonical ids, assigned over canonical points in sorted order;
	// ghosts interleave in the full slice but never consume an id.
	canonID := make([]int, len(tmp))
	numCanon := 0
	for newIdx, t := range tmp {
		if !t.Ghost {
			canonID[newIdx] = numCanon
			numCanon++
		}
	}

	points := make([]Point, len(tmp))
	links := make(map[int]int)
	for newIdx, t := range tmp {
		pt := Point{X: t.X, Y: t.Y, Ghost: t.Ghost, Index: newIdx}
		if t.Ghost {
			pt.Link = canonID[newIndexByOrigin[t.Link]]
			links[newIdx] = pt.Link
		} else {
			pt.Link = canonID[newIdx]
		}
		points[newIdx] = pt
	}

	return &Set{points: points, numCanon: numCanon, linksByGh: links}, nil
}

// sortKey implements the spec's deterministic total order.
func sortKey(x, y float64) float64 { return 100*x + y }

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
