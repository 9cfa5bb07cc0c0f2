package bitlattice_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crystacean/lattice/bitlattice"
	"github.com/crystacean/lattice/site"
)

func singles(n int) []site.Site {
	out := make([]site.Site, n)
	for i := range out {
		out[i] = site.Site{Kind: site.Single, Attach: []int{i}}
	}
	return out
}

func TestBuild_NoSites(t *testing.T) {
	_, err := bitlattice.Build(nil, nil, nil, 0)
	require.ErrorIs(t, err, bitlattice.ErrNoSites)
}

func TestBuild_BadArity(t *testing.T) {
	bad := []site.Site{{Kind: site.Mid, Attach: []int{0}}}
	_, err := bitlattice.Build(bad, nil, nil, 3)
	require.ErrorIs(t, err, bitlattice.ErrBadArity)
}

func TestBuild_OrderingTriMidSingle(t *testing.T) {
	s := singles(3)
	mids := []site.Site{{Kind: site.Mid, Attach: []int{0, 1}}}
	tris := []site.Site{{Kind: site.Tri, Attach: []int{0, 1, 2}}}
	bl, err := bitlattice.Build(s, mids, tris, 3)
	require.NoError(t, err)
	require.Equal(t, site.Tri, bl.Sites[0].Kind)
	require.Equal(t, site.Mid, bl.Sites[1].Kind)
	require.Equal(t, site.Single, bl.Sites[2].Kind)
	require.Equal(t, site.Single, bl.Sites[3].Kind)
	require.Equal(t, site.Single, bl.Sites[4].Kind)
	require.Equal(t, 2, bl.SingleStart())
	require.False(t, bl.IsSingle(1))
	require.True(t, bl.IsSingle(2))
}

func TestBuild_AttachAndExcludeMasks(t *testing.T) {
	s := singles(3)
	mids := []site.Site{{Kind: site.Mid, Attach: []int{0, 1}}}
	bl, err := bitlattice.Build(s, mids, nil, 3)
	require.NoError(t, err)

	// Mid is index 0 (no tris), Singles are 1,2,3 for points 0,1,2.
	require.Equal(t, 2, bl.Attach[0].PopCount())
	require.True(t, bl.Attach[0].Test(0))
	require.True(t, bl.Attach[0].Test(1))

	// Mid conflicts with Single(0) and Single(1) but not Single(2).
	require.True(t, bl.Excludes[0].Test(1))
	require.True(t, bl.Excludes[0].Test(2))
	require.False(t, bl.Excludes[0].Test(3))
}

func TestBuild_FullMaskFeasibleFromSinglesAlone(t *testing.T) {
	s := singles(4)
	bl, err := bitlattice.Build(s, nil, nil, 4)
	require.NoError(t, err)

	var bound bitlattice.Mask
	for _, a := range bl.Attach {
		bound = bound.Union(a)
	}
	require.True(t, bound.Equal(bl.Full))
}

func TestWithMaxSinglets(t *testing.T) {
	s := singles(2)
	bl, err := bitlattice.Build(s, nil, nil, 2, bitlattice.WithMaxSinglets(0))
	require.NoError(t, err)
	require.Equal(t, 0, bl.MaxSinglets)
}
