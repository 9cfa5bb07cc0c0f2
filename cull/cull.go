package cull

import (
	"math"
	"sort"

	"github.com/crystacean/lattice/decode"
	"github.com/crystacean/lattice/internal/xerrors"
)

const pkgName = "cull"

// Dedupe groups envs by (count_tri, count_mid, count_single), computes each
// solution's sorted periodic-wrapped oxygen-oxygen distance multiset, and
// keeps one representative per equivalence class — two solutions are
// duplicates iff every corresponding sorted distance differs by at most
// margin (spec.md §4.6). Input order is preserved among survivors.
func Dedupe(envs []decode.Envelope, cellX, cellY, margin float64) ([]decode.Envelope, error) {
	kept, err := DedupeIndices(envs, cellX, cellY, margin)
	if err != nil {
		return nil, err
	}
	out := make([]decode.Envelope, 0, len(kept))
	for _, i := range kept {
		out = append(out, envs[i])
	}
	return out, nil
}

// DedupeIndices is Dedupe returning the surviving positions into envs
// instead of the envelopes themselves, for callers that track solutions by
// an external identity (cmd/latticegen's one-file-per-solution layout).
func DedupeIndices(envs []decode.Envelope, cellX, cellY, margin float64) ([]int, error) {
	if len(envs) == 0 {
		return nil, xerrors.Wrap(pkgName, "DedupeIndices", ErrNoEnvelopes)
	}
	if cellX <= 0 || cellY <= 0 {
		return nil, xerrors.Wrap(pkgName, "DedupeIndices", ErrNonPositiveCell)
	}

	signatures := make([][]float64, len(envs))
	keys := make([]connType, len(envs))
	for i, e := range envs {
		keys[i] = connType{tri: len(e.Tripoints), mid: len(e.Midpoints), single: len(e.Singles)}
		signatures[i] = distanceSignature(e, cellX, cellY)
	}

	keptByKey := make(map[connType][][]float64)
	var kept []int
	for i := range envs {
		k := keys[i]
		if nearlyIn(signatures[i], keptByKey[k], margin) {
			continue
		}
		keptByKey[k] = append(keptByKey[k], signatures[i])
		kept = append(kept, i)
	}
	return kept, nil
}

// distanceSignature computes the sorted periodic-wrapped pairwise
// oxygen-oxygen distance multiset for one solution document, per
// spec.md §4.6: "dx > max_x/2 => dx -= max_x", analogously for y.
func distanceSignature(e decode.Envelope, cellX, cellY float64) []float64 {
	oxygens := make([]decode.PointJSON, 0, len(e.Tripoints)+len(e.Midpoints)+len(e.Singles))
	oxygens = append(oxygens, e.Tripoints...)
	oxygens = append(oxygens, e.Midpoints...)
	oxygens = append(oxygens, e.Singles...)

	var out []float64
	for i := 0; i < len(oxygens); i++ {
		for j := i + 1; j < len(oxygens); j++ {
			dx := math.Abs(oxygens[i].X - oxygens[j].X)
			if dx > cellX/2 {
				dx -= cellX
			}
			dy := math.Abs(oxygens[i].Y - oxygens[j].Y)
			if dy > cellY/2 {
				dy -= cellY
			}
			out = append(out, math.Sqrt(dx*dx+dy*dy))
		}
	}
	sort.Float64s(out)
	return out
}

// nearlyIn reports whether candidate matches (elementwise, within margin)
// any signature already kept for its connType group.
func nearlyIn(candidate []float64, kept [][]float64, margin float64) bool {
	for _, u := range kept {
		if len(candidate) != len(u) {
			continue
		}
		match := true
		for i := range candidate {
			if math.Abs(candidate[i]-u[i]) > margin {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
