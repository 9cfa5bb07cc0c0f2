package bitlattice

import (
	"errors"

	"github.com/crystacean/lattice/site"
)

// Sentinel errors.
var (
	// ErrNoSites indicates zero sites (of any kind) were supplied to Build.
	ErrNoSites = errors.New("bitlattice: no candidate sites supplied")

	// ErrBadArity indicates a site's Attach set length does not match its
	// Kind's arity (spec.md §3 invariant).
	ErrBadArity = errors.New("bitlattice: attach set length does not match site arity")
)

// BitLattice is the compiled solver input (spec.md §3/§4.2): an ordered
// site list (Tris, then Mids, then Singles — exploited by the solver's
// branching heuristic), per-site attach/exclude masks, and the
// full-universe mask over canonical lattice-point indices.
type BitLattice struct {
	N           int  // number of canonical lattice points
	Full        Mask // bits [0,N) set
	Sites       []site.Site
	Attach      []Mask // Attach[s] = which canonical points site s binds
	Excludes    []Mask // Excludes[s] = bitset of site indices j>s sharing an attach bit with s
	MaxSinglets int
	Admissible  Mask // optional pre-filter: which site indices may be selected (nil == all)
}

// Option configures Build.
type Option func(*config)

type config struct {
	maxSinglets int
}

// WithMaxSinglets overrides the default max_singlets (spec.md §4.2, default
// 2): the upper bound on Single sites in any one solution.
func WithMaxSinglets(n int) Option {
	return func(c *config) { c.maxSinglets = n }
}

const defaultMaxSinglets = 2

// SingleStart returns the first site index of Single-kind sites (and thus
// one-past the last Mid index); equivalently TriCount+MidCount.
func (bl *BitLattice) SingleStart() int {
	for i, s := range bl.Sites {
		if s.Kind == site.Single {
			return i
		}
	}
	return len(bl.Sites)
}

// IsSingle reports whether site index s is a Single.
func (bl *BitLattice) IsSingle(s int) bool {
	return bl.Sites[s].Kind == site.Single
}
