package decode

import "github.com/crystacean/lattice/lattice"

// Chemistry is the chemistry-facing export tuple of spec.md §6:
// (basis_vectors, positions, atomic_numbers). Silicons are placed at
// SiZCoord and oxygens at OZCoord — a fixed convention, not a computed
// geometry (spec.md Non-goal: no 3D geometry).
type Chemistry struct {
	BasisVectors  [3][3]float64
	Positions     [][3]float64
	AtomicNumbers []uint8
}

// ToChemistry builds a Chemistry tuple from the canonical lattice points
// (as silicons) and a decoded solution's oxygens. basisVectors is passed
// through verbatim; this package has no opinion on lattice geometry beyond
// carrying it to the output tuple (spec.md §1: the core consumes points
// and a neighbor relation, nothing about basis vectors).
func ToChemistry(set *lattice.Set, d Decoded, basisVectors [3][3]float64) Chemistry {
	c := Chemistry{BasisVectors: basisVectors}

	for _, p := range set.Points() {
		if p.Ghost {
			continue // only canonical points carry independent atoms (spec.md §3)
		}
		c.Positions = append(c.Positions, [3]float64{p.X, p.Y, SiZCoord})
		c.AtomicNumbers = append(c.AtomicNumbers, SiZ)
	}

	for _, s := range allOxygens(d) {
		c.Positions = append(c.Positions, [3]float64{s.X, s.Y, OZCoord})
		c.AtomicNumbers = append(c.AtomicNumbers, OZ)
	}

	return c
}

func allOxygens(d Decoded) []DecodedSite {
	out := make([]DecodedSite, 0, len(d.Tris)+len(d.Mids)+len(d.Singles))
	out = append(out, d.Tris...)
	out = append(out, d.Mids...)
	out = append(out, d.Singles...)
	return out
}
