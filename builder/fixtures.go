package builder

import "github.com/crystacean/lattice/lattice"

// Line returns n canonical, non-periodic points spaced one spacing unit
// apart along the x axis. A minimal fixture for neighbor/site unit tests
// that don't need a full periodic cell, the lattice-domain analogue of
// lvlath/builder's Path(n) fixture.
func Line(n int, opts ...CellOption) []lattice.RawPoint {
	if n < 1 {
		return nil
	}
	cfg := newCellConfig(opts...)
	pts := make([]lattice.RawPoint, n)
	for i := 0; i < n; i++ {
		pts[i] = lattice.RawPoint{X: float64(i) * cfg.spacing, Y: 0}
	}
	return pts
}

// Triangle returns the 3 canonical points of a single equilateral triangle
// cell — one lower edge plus the apex reached via vecY — the smallest unit
// that can carry a Tri attachment site, the lattice analogue of lvlath's
// Cycle(3) fixture.
func Triangle(opts ...CellOption) []lattice.RawPoint {
	cfg := newCellConfig(opts...)
	vecX, vecY := cfg.basisVectors()
	return []lattice.RawPoint{
		{X: 0, Y: 0},
		{X: vecX[0], Y: vecX[1]},
		{X: vecY[0], Y: vecY[1]},
	}
}

// Hex returns the 7 canonical points of a single hexagonal ring around a
// central point (6 neighbors at 60-degree steps plus the center), a
// hand-checkable fixture for ring/filter tests, the lattice analogue of
// lvlath's Wheel(7) fixture.
func Hex(opts ...CellOption) []lattice.RawPoint {
	cfg := newCellConfig(opts...)
	vecX, vecY := cfg.basisVectors()

	// The 6 integer (a,b) triangular-lattice neighbor offsets around the
	// origin, in angular order.
	offsets := [6][2]int{{1, 0}, {0, 1}, {-1, 1}, {-1, 0}, {0, -1}, {1, -1}}

	pts := make([]lattice.RawPoint, 0, 7)
	pts = append(pts, lattice.RawPoint{X: 0, Y: 0})
	for _, o := range offsets {
		fa, fb := float64(o[0]), float64(o[1])
		pts = append(pts, lattice.RawPoint{
			X: fa*vecX[0] + fb*vecY[0],
			Y: fa*vecX[1] + fb*vecY[1],
		})
	}
	return pts
}
