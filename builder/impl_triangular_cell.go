package builder

import (
	"github.com/crystacean/lattice/internal/xerrors"
	"github.com/crystacean/lattice/lattice"
)

const pkgName = "builder"

// TriangularCell builds the RawPoint set for a periodic size x size
// parallelogram cell of the triangular lattice, adapted from
// original_source/basis_vectors.py's full_lattice_from_basis_vectors. Each
// of the size*size sub-cells contributes four canonical points (lower-left,
// lower-right, upper-left, upper-right, in that row-major order — the same
// deterministic emission order as lvlath/builder's Grid(rows, cols)):
//
//	lb(x,y) = (2x-y)   * vecX + (2y)   * vecY
//	rb(x,y) = (2x-y+1) * vecX + (2y)   * vecY
//	lt(x,y) = (2x-y)   * vecX + (2y+1) * vecY
//	rt(x,y) = (2x-y+1) * vecX + (2y+1) * vecY
//
// Every canonical point on the low edge of the cell (x==0 or y==0) also gets
// a ghost image one full period further along that axis, and the low-corner
// cell's points additionally get a diagonal image shifted by both periods,
// each linked back to its canonical point — the wrap that lets neighbor/site
// construction see across the periodic boundary (spec.md §3's ghost model). The period translation
// vectors are derived directly from the formulas above: shifting the cell
// index x by size adds 2*size*vecX; shifting y by size adds -size*vecX +
// 2*size*vecY.
//
// basisVectors is returned as a 3x3 tuple (z-row zero) for direct use by
// decode.ToChemistry; TriangularCell itself has no z-axis opinion.
func TriangularCell(size int, opts ...CellOption) ([]lattice.RawPoint, [3][3]float64, error) {
	if size < 1 {
		return nil, [3][3]float64{}, xerrors.Wrap(pkgName, "TriangularCell", ErrSizeTooSmall)
	}
	cfg := newCellConfig(opts...)
	vecX, vecY := cfg.basisVectors()

	pointAt := func(a, b int) (float64, float64) {
		fa, fb := float64(a), float64(b)
		return fa*vecX[0] + fb*vecY[0], fa*vecX[1] + fb*vecY[1]
	}

	var raw []lattice.RawPoint
	type coeff struct{ a, b int }
	canonCoeff := make(map[coeff]int) // (a,b) -> raw index, for ghost-linking lookups

	emit := func(a, b int) int {
		x, y := pointAt(a, b)
		idx := len(raw)
		raw = append(raw, lattice.RawPoint{X: x, Y: y})
		canonCoeff[coeff{a, b}] = idx
		return idx
	}

	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			lbA, lbB := 2*x-y, 2*y
			emit(lbA, lbB)
			emit(lbA+1, lbB)
			emit(lbA, lbB+1)
			emit(lbA+1, lbB+1)
		}
	}

	// Period translation vectors, expressed in (a,b)-coefficient space so
	// ghost coordinates reuse pointAt directly.
	tx := coeff{a: 2 * size, b: 0}
	ty := coeff{a: -size, b: 2 * size}

	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			lbA, lbB := 2*x-y, 2*y
			points := []coeff{{lbA, lbB}, {lbA + 1, lbB}, {lbA, lbB + 1}, {lbA + 1, lbB + 1}}
			for _, c := range points {
				canonIdx := canonCoeff[c]
				if y == 0 {
					gx, gy := pointAt(c.a+ty.a, c.b+ty.b)
					raw = append(raw, lattice.RawPoint{X: gx, Y: gy, Ghost: true, Link: canonIdx})
				}
				if x == 0 {
					gx, gy := pointAt(c.a+tx.a, c.b+tx.b)
					raw = append(raw, lattice.RawPoint{X: gx, Y: gy, Ghost: true, Link: canonIdx})
				}
				if x == 0 && y == 0 {
					// Corner image, shifted by both periods: the
					// low-corner point wraps diagonally to the top-right
					// corner of the cell.
					gx, gy := pointAt(c.a+tx.a+ty.a, c.b+tx.b+ty.b)
					raw = append(raw, lattice.RawPoint{X: gx, Y: gy, Ghost: true, Link: canonIdx})
				}
			}
		}
	}

	basis := [3][3]float64{
		{vecX[0], vecX[1], 0},
		{vecY[0], vecY[1], 0},
		{0, 0, 0},
	}
	return raw, basis, nil
}
