package filter

import (
	"math"
	"sort"

	"github.com/crystacean/lattice/site"
)

// DeduplicateSimilar implements spec.md §4.4: compute each candidate site's
// sorted oxygen-oxygen distance multiset against every other candidate,
// then group sites whose multisets agree elementwise within tol
// (difference_distance, default 0.05 Å). One representative per group is
// kept; kept preserves the original input order of the surviving sites.
//
// This filter is a heuristic: it reduces but does not eliminate symmetry
// redundancy (spec.md §4.4/§9). cull.Dedupe (spec.md §4.6) is authoritative.
func DeduplicateSimilar(sites []site.Site, tol float64) (kept []site.Site, err error) {
	if tol < 0 {
		return nil, ErrNegativeTolerance
	}
	n := len(sites)
	if n <= 1 {
		return append([]site.Site(nil), sites...), nil
	}

	signatures := make([][]float64, n)
	for i := range sites {
		signatures[i] = distanceSignature(sites, i)
	}

	representative := make([]bool, n)
	assigned := make([]bool, n)
	for i := 0; i < n; i++ {
		if assigned[i] {
			continue
		}
		representative[i] = true
		assigned[i] = true
		for j := i + 1; j < n; j++ {
			if assigned[j] {
				continue
			}
			if sites[j].Kind != sites[i].Kind {
				continue
			}
			if signaturesMatch(signatures[i], signatures[j], tol) {
				assigned[j] = true
			}
		}
	}

	for i, s := range sites {
		if representative[i] {
			kept = append(kept, s)
		}
	}
	return kept, nil
}

// distanceSignature returns the sorted Euclidean distances from sites[i] to
// every other site, the "pairwise oxygen-oxygen distance multiset" of
// spec.md §4.4.
func distanceSignature(sites []site.Site, i int) []float64 {
	out := make([]float64, 0, len(sites)-1)
	for j, s := range sites {
		if j == i {
			continue
		}
		dx := sites[i].X - s.X
		dy := sites[i].Y - s.Y
		out = append(out, math.Sqrt(dx*dx+dy*dy))
	}
	sort.Float64s(out)
	return out
}

// signaturesMatch reports whether a and b agree elementwise within tol.
func signaturesMatch(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
