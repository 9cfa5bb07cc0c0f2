package solver_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crystacean/lattice/bitlattice"
	"github.com/crystacean/lattice/lattice"
	"github.com/crystacean/lattice/neighbor"
	"github.com/crystacean/lattice/site"
	"github.com/crystacean/lattice/solver"
)

// buildE1 constructs the spec.md §8 E1 fixture: four points, no
// periodicity, cutoff 3.5, yielding a hand-verified edge set (every pair
// except (0,3), whose distance is ~5.33 > 3.5) and exactly two triangles,
// {0,1,2} and {1,2,3}.
func buildE1(t *testing.T) (*bitlattice.BitLattice, map[string]int) {
	t.Helper()

	raw := []lattice.RawPoint{
		{X: 0, Y: 0},
		{X: 1.6, Y: 2.7},
		{X: 3.1, Y: 0},
		{X: 4.6, Y: 2.7},
	}
	set, err := lattice.Build(raw)
	require.NoError(t, err)
	require.Equal(t, 4, set.NumCanonical())

	rel := &neighbor.Relation{N: 4, Pairs: [][2]int{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}}}

	singles, mids, tris := mustGenerate(t, set, rel)
	require.Len(t, tris, 2)
	require.Len(t, mids, 5)
	require.Len(t, singles, 4)

	bl, err := bitlattice.Build(singles, mids, tris, set.NumCanonical())
	require.NoError(t, err)

	indices := map[string]int{}
	for i, s := range bl.Sites {
		indices[attachKey(s.Attach)] = i
	}
	return bl, indices
}

func mustGenerate(t *testing.T, set *lattice.Set, rel *neighbor.Relation) (singles, mids, tris []site.Site) {
	t.Helper()
	s, m, tr, err := site.Generate(set, rel)
	require.NoError(t, err)
	return s, m, tr
}

func attachKey(attach []int) string {
	key := ""
	for _, a := range attach {
		key += string(rune('0' + a))
	}
	return key
}

func TestSolve_E1_FindsTri012(t *testing.T) {
	bl, indices := buildE1(t)
	triIdx, ok := indices["012"]
	require.True(t, ok, "expected a Tri site attaching {0,1,2}")

	res, err := solver.Solve(bl, solver.Options{FindAll: true})
	require.NoError(t, err)
	require.NotEmpty(t, res.Solutions)

	found := false
	for _, sol := range res.Solutions {
		if sol.Mask.Test(uint(triIdx)) {
			found = true
			break
		}
	}
	require.True(t, found, "no solution selected the {0,1,2} Tri")
}

func TestSolve_Coverage_Exclusion_Uniqueness(t *testing.T) {
	bl, _ := buildE1(t)
	res, err := solver.Solve(bl, solver.Options{FindAll: true})
	require.NoError(t, err)
	require.NotEmpty(t, res.Solutions)

	seen := make(map[string]bool)
	for _, sol := range res.Solutions {
		// Coverage: union of selected attach masks equals full_mask.
		var bound bitlattice.Mask
		for _, idx := range sol.Mask.Bits() {
			bound = bound.Union(bl.Attach[idx])
		}
		require.True(t, bound.Equal(bl.Full), "solution does not cover every point")

		// Exclusion: selected sites are pairwise disjoint.
		bits := sol.Mask.Bits()
		for i := 0; i < len(bits); i++ {
			for j := i + 1; j < len(bits); j++ {
				require.False(t, bl.Attach[bits[i]].Intersects(bl.Attach[bits[j]]),
					"sites %d and %d conflict in an emitted solution", bits[i], bits[j])
			}
		}

		// Uniqueness: no bitset repeats in one enumeration.
		key := attachKey(bits)
		require.False(t, seen[key], "solution %v emitted twice", bits)
		seen[key] = true
	}
}

func TestSolve_FindAllFalse_StopsAtFirst(t *testing.T) {
	bl, _ := buildE1(t)
	res, err := solver.Solve(bl, solver.Options{FindAll: false})
	require.NoError(t, err)
	require.Len(t, res.Solutions, 1)
}

func TestSolve_SinglesBoundMonotonicity(t *testing.T) {
	raw := []lattice.RawPoint{{X: 0, Y: 0}, {X: 1, Y: 0}}
	set, err := lattice.Build(raw)
	require.NoError(t, err)
	rel := &neighbor.Relation{N: 2, Pairs: [][2]int{{0, 1}}}
	singles, mids, _ := mustGenerate(t, set, rel)

	bl0, err := bitlattice.Build(singles, mids, nil, 2, bitlattice.WithMaxSinglets(0))
	require.NoError(t, err)
	res0, err := solver.Solve(bl0, solver.Options{FindAll: true})
	require.NoError(t, err)

	bl2, err := bitlattice.Build(singles, mids, nil, 2, bitlattice.WithMaxSinglets(2))
	require.NoError(t, err)
	res2, err := solver.Solve(bl2, solver.Options{FindAll: true})
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(res2.Solutions), len(res0.Solutions))
}

func TestSolve_ForbiddenMasksYieldSubset(t *testing.T) {
	bl, indices := buildE1(t)

	unfiltered, err := solver.Solve(bl, solver.Options{FindAll: true})
	require.NoError(t, err)

	// Forbid the {0,1,2} Tri outright: its own site mask becomes a
	// one-bit forbidden clique, standing in for a no-rings cycle mask.
	triIdx := indices["012"]
	var forbidden bitlattice.Mask
	forbidden.Set(uint(triIdx))

	filtered, err := solver.Solve(bl, solver.Options{
		FindAll:        true,
		ForbiddenMasks: []bitlattice.Mask{forbidden},
	})
	require.NoError(t, err)

	require.LessOrEqual(t, len(filtered.Solutions), len(unfiltered.Solutions))
	for _, sol := range filtered.Solutions {
		require.False(t, sol.Mask.Test(uint(triIdx)))
	}
}

func TestSolve_AdmissibleMaskRestrictsCandidates(t *testing.T) {
	bl, indices := buildE1(t)

	// Admit every site except the {0,1,2} Tri: no solution may select it,
	// and the rest of the enumeration is unchanged.
	triIdx := indices["012"]
	admissible := bitlattice.FullMask(len(bl.Sites))
	restricted := *bl
	restricted.Admissible = withBitCleared(admissible, uint(triIdx))

	res, err := solver.Solve(&restricted, solver.Options{FindAll: true})
	require.NoError(t, err)
	require.NotEmpty(t, res.Solutions)
	for _, sol := range res.Solutions {
		require.False(t, sol.Mask.Test(uint(triIdx)))
	}
}

// withBitCleared rebuilds m without bit i; Mask carries no Clear method
// since the solver never unsets bits on its hot path.
func withBitCleared(m bitlattice.Mask, i uint) bitlattice.Mask {
	var out bitlattice.Mask
	for _, b := range m.Bits() {
		if uint(b) != i {
			out.Set(uint(b))
		}
	}
	return out
}

func TestSolve_E5_DeterministicAcrossRuns(t *testing.T) {
	bl, _ := buildE1(t)

	res1, err := solver.Solve(bl, solver.Options{FindAll: true})
	require.NoError(t, err)
	res2, err := solver.Solve(bl, solver.Options{FindAll: true})
	require.NoError(t, err)

	require.Equal(t, len(res1.Solutions), len(res2.Solutions))
	for i := range res1.Solutions {
		require.True(t, res1.Solutions[i].Mask.Equal(res2.Solutions[i].Mask),
			"solution %d differs between identical runs", i)
	}
}

func TestSolve_NilLattice(t *testing.T) {
	_, err := solver.Solve(nil, solver.Options{})
	require.ErrorIs(t, err, solver.ErrNilLattice)
}

func TestSolve_Cancellation(t *testing.T) {
	bl, _ := buildE1(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // already cancelled before the first step

	res, err := solver.Solve(bl, solver.Options{FindAll: true, Ctx: ctx})
	require.NoError(t, err)
	require.True(t, res.Cancelled)
}

func TestSolve_MaxDepthCutoffNeverEmitsBeyondBudget(t *testing.T) {
	bl, _ := buildE1(t)
	// No single site has arity 4, so a one-selection budget can never
	// reach full coverage: every branch should die before emitting.
	res, err := solver.Solve(bl, solver.Options{FindAll: true, MaxDepth: 1})
	require.NoError(t, err)
	require.Empty(t, res.Solutions)
}

func TestSolveParallel_MatchesSerial(t *testing.T) {
	bl, _ := buildE1(t)

	serial, err := solver.Solve(bl, solver.Options{FindAll: true})
	require.NoError(t, err)

	parallel, err := solver.SolveParallel(bl, solver.Options{FindAll: true}, 4)
	require.NoError(t, err)

	require.Equal(t, len(serial.Solutions), len(parallel.Solutions))

	serialKeys := make(map[string]bool, len(serial.Solutions))
	for _, s := range serial.Solutions {
		serialKeys[attachKey(s.Mask.Bits())] = true
	}
	for _, s := range parallel.Solutions {
		require.True(t, serialKeys[attachKey(s.Mask.Bits())], "parallel emitted a solution serial did not")
	}
}

func TestSolveParallel_FindFirstStopsEarly(t *testing.T) {
	bl, _ := buildE1(t)

	start := time.Now()
	res, err := solver.SolveParallel(bl, solver.Options{FindAll: false}, 4)
	require.NoError(t, err)
	require.Len(t, res.Solutions, 1)
	require.Less(t, time.Since(start), 5*time.Second)
}
