package decode

import (
	"github.com/crystacean/lattice/bitlattice"
	"github.com/crystacean/lattice/internal/xerrors"
	"github.com/crystacean/lattice/site"
	"github.com/crystacean/lattice/solver"
)

const pkgName = "decode"

// Solution maps sol's selected-site bitset back to concrete coordinates,
// partitioned into Tris/Mids/Singles per spec.md §4.6's decoder contract.
func Solution(bl *bitlattice.BitLattice, sol solver.Solution) (Decoded, error) {
	var out Decoded
	for _, idx := range sol.Mask.Bits() {
		if idx < 0 || idx >= len(bl.Sites) {
			return Decoded{}, xerrors.Wrap(pkgName, "Solution", ErrSiteIndexOutOfRange)
		}
		s := bl.Sites[idx]
		d := DecodedSite{X: s.X, Y: s.Y}
		switch s.Kind {
		case site.Tri:
			out.Tris = append(out.Tris, d)
		case site.Mid:
			out.Mids = append(out.Mids, d)
		case site.Single:
			out.Singles = append(out.Singles, d)
		}
	}
	return out, nil
}
