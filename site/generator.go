package site

import (
	"sort"

	"github.com/crystacean/lattice/lattice"
	"github.com/crystacean/lattice/neighbor"
)

// Generate derives Single, Mid, and Tri candidate sites from a built
// lattice.Set and its neighbor relation, per spec.md §4.1.
//
// rel's indices must correspond 1:1 to set.Points() (i.e. it was built by
// projecting set.Points() to neighbor.Point in the same order); Generate
// does not itself re-derive the relation, keeping the spatial-index
// collaborator fully external per spec.md §1.
func Generate(set *lattice.Set, rel *neighbor.Relation) (singles, mids, tris []Site, err error) {
	pts := set.Points()
	if set.NumCanonical() == 0 {
		return nil, nil, nil, ErrNeedCanonical
	}

	singles = generateSingles(pts)
	mids, pairsByFirst := generateMids(pts, rel)
	tris = generateTris(pts, rel, pairsByFirst)

	return singles, mids, tris, nil
}

// generateSingles emits one Single per canonical point, attaching only to
// itself.
func generateSingles(pts []lattice.Point) []Site {
	out := make([]Site, 0, len(pts))
	for _, p := range pts {
		if p.Ghost {
			continue
		}
		out = append(out, Site{
			Kind:   Single,
			X:      p.X,
			Y:      p.Y,
			Attach: []int{p.Canonical()},
		})
	}
	return out
}

// generateMids emits one Mid per qualifying neighbor pair and returns the
// sorted-by-j adjacency lists (keyed by the smaller raw index) that
// generateTris reuses to find triangles without re-deriving edges.
func generateMids(pts []lattice.Point, rel *neighbor.Relation) ([]Site, map[int][]int) {
	pairsByFirst := make(map[int][]int)
	var mids []Site
	for _, pr := range rel.Pairs {
		i, j := pr[0], pr[1]
		pairsByFirst[i] = append(pairsByFirst[i], j)
	}
	for k := range pairsByFirst {
		sort.Ints(pairsByFirst[k])
	}

	for _, pr := range rel.Pairs {
		i, j := pr[0], pr[1]
		pi, pj := pts[i], pts[j]
		if pi.Ghost && pj.Ghost {
			continue
		}
		ci, cj := pi.Canonical(), pj.Canonical()
		if ci == cj {
			continue // degenerate: point and its own periodic image
		}
		attach := []int{ci, cj}
		sort.Ints(attach)
		mids = append(mids, Site{
			Kind:   Mid,
			X:      (pi.X + pj.X) / 2,
			Y:      (pi.Y + pj.Y) / 2,
			Attach: attach,
		})
	}
	return mids, pairsByFirst
}

// generateTris walks, for each raw index i, every pair (b,c) with i<b<c
// drawn from i's neighbor list, and emits a Tri whenever (b,c) is itself an
// edge — i.e. a < b < c triangle, emitted exactly once by construction.
func generateTris(pts []lattice.Point, rel *neighbor.Relation, pairsByFirst map[int][]int) []Site {
	firsts := make([]int, 0, len(pairsByFirst))
	for i := range pairsByFirst {
		firsts = append(firsts, i)
	}
	sort.Ints(firsts)

	var tris []Site
	for _, i := range firsts {
		js := pairsByFirst[i]
		for bi := 0; bi < len(js); bi++ {
			for ci := bi + 1; ci < len(js); ci++ {
				b, c := js[bi], js[ci]
				if !rel.Has(b, c) {
					continue
				}
				pi, pb, pc := pts[i], pts[b], pts[c]
				if pi.Ghost && pb.Ghost && pc.Ghost {
					continue
				}
				canon := []int{pi.Canonical(), pb.Canonical(), pc.Canonical()}
				if canon[0] == canon[1] || canon[1] == canon[2] || canon[0] == canon[2] {
					continue // degenerate triangle after deghosting
				}
				sort.Ints(canon)
				tris = append(tris, Site{
					Kind:   Tri,
					X:      (pi.X + pb.X + pc.X) / 3,
					Y:      (pi.Y + pb.Y + pc.Y) / 3,
					Attach: canon,
				})
			}
		}
	}
	return tris
}
