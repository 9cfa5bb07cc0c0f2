package bitlattice

import (
	"github.com/crystacean/lattice/internal/xerrors"
	"github.com/crystacean/lattice/site"
)

const pkgName = "bitlattice"

// Build compiles singles/mids/tris into a solver-ready BitLattice.
//
// Indexing order is Tris, then Mids, then Singles (spec.md §4.2), so the
// solver's static Tri-before-Mid-before-Single branch order falls out of
// plain ascending iteration over site indices.
//
// Complexity: O(S^2) worst case for Excludes (S = total sites), since each
// site's exclude mask is derived by testing against every later site; in
// practice bounded by each site's small, localized attach set.
func Build(singles, mids, tris []site.Site, n int, opts ...Option) (*BitLattice, error) {
	total := len(singles) + len(mids) + len(tris)
	if total == 0 {
		return nil, xerrors.Wrap(pkgName, "Build", ErrNoSites)
	}

	cfg := config{maxSinglets: defaultMaxSinglets}
	for _, o := range opts {
		o(&cfg)
	}

	ordered := make([]site.Site, 0, total)
	ordered = append(ordered, tris...)
	ordered = append(ordered, mids...)
	ordered = append(ordered, singles...)

	for i, s := range ordered {
		if len(s.Attach) != s.Kind.Arity() {
			return nil, xerrors.Wrapf(pkgName, "Build", "site %d (%s)", ErrBadArity, i, s.Kind)
		}
	}

	attach := make([]Mask, total)
	for i, s := range ordered {
		m := NewMask(n)
		for _, c := range s.Attach {
			m.Set(uint(c))
		}
		attach[i] = m
	}

	excludes := make([]Mask, total)
	for i := range ordered {
		m := NewMask(total)
		for j := i + 1; j < total; j++ {
			if attach[i].Intersects(attach[j]) {
				m.Set(uint(j))
			}
		}
		excludes[i] = m
	}

	return &BitLattice{
		N:           n,
		Full:        FullMask(n),
		Sites:       ordered,
		Attach:      attach,
		Excludes:    excludes,
		MaxSinglets: cfg.maxSinglets,
	}, nil
}
