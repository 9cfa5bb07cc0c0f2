package builder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crystacean/lattice/builder"
	"github.com/crystacean/lattice/lattice"
)

func TestTriangularCell_SizeTooSmall(t *testing.T) {
	_, _, err := builder.TriangularCell(0)
	require.ErrorIs(t, err, builder.ErrSizeTooSmall)
}

func TestTriangularCell_SizeOneHasFourCanonicalPoints(t *testing.T) {
	raw, basis, err := builder.TriangularCell(1)
	require.NoError(t, err)

	var canon, ghosts int
	for _, p := range raw {
		if p.Ghost {
			ghosts++
		} else {
			canon++
		}
	}
	require.Equal(t, 4, canon)
	require.Positive(t, ghosts) // top/right boundary images, spec.md E2
	require.NotZero(t, basis[0][0])
	require.NotZero(t, basis[1][1])
}

func TestTriangularCell_GhostLinksAreCanonical(t *testing.T) {
	raw, _, err := builder.TriangularCell(2)
	require.NoError(t, err)

	for i, p := range raw {
		if !p.Ghost {
			continue
		}
		require.GreaterOrEqual(t, p.Link, 0)
		require.Less(t, p.Link, len(raw))
		require.False(t, raw[p.Link].Ghost, "ghost %d links another ghost", i)
	}
}

func TestTriangularCell_BuildsIntoLatticeSet(t *testing.T) {
	raw, _, err := builder.TriangularCell(2)
	require.NoError(t, err)

	set, err := lattice.Build(raw)
	require.NoError(t, err)
	require.Equal(t, 16, set.NumCanonical()) // 4 points * 2x2 cells
}

func TestTriangularCell_SpacingScalesCoordinates(t *testing.T) {
	small, _, err := builder.TriangularCell(1, builder.WithSpacing(1.0))
	require.NoError(t, err)
	big, _, err := builder.TriangularCell(1, builder.WithSpacing(2.0))
	require.NoError(t, err)

	require.InDelta(t, small[1].X*2, big[1].X, 1e-9)
}

func TestWithSpacing_PanicsOnNonPositive(t *testing.T) {
	require.Panics(t, func() { builder.WithSpacing(0) })
	require.Panics(t, func() { builder.WithSpacing(-1) })
}

func TestLine_ProducesEvenlySpacedPoints(t *testing.T) {
	pts := builder.Line(3, builder.WithSpacing(1.0))
	require.Len(t, pts, 3)
	require.Equal(t, 0.0, pts[0].X)
	require.InDelta(t, 1.0, pts[1].X, 1e-9)
	require.InDelta(t, 2.0, pts[2].X, 1e-9)
}

func TestLine_ZeroOrNegativeYieldsNil(t *testing.T) {
	require.Nil(t, builder.Line(0))
	require.Nil(t, builder.Line(-1))
}

func TestTriangle_ProducesThreePoints(t *testing.T) {
	pts := builder.Triangle()
	require.Len(t, pts, 3)
}

func TestHex_ProducesSevenPointsAroundCenter(t *testing.T) {
	pts := builder.Hex()
	require.Len(t, pts, 7)
	require.Equal(t, 0.0, pts[0].X)
	require.Equal(t, 0.0, pts[0].Y)
}
