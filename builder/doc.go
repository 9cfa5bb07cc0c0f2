// Package builder constructs RawPoint sets for the periodic triangular
// lattice that anchors this module (lattice.RawPoint, spec.md §3). It keeps
// lvlath/builder's functional-options shape (a config struct resolved by a
// chain of CellOption values) but trades graph-topology constructors
// (Cycle, Grid, Star, ...) for lattice-cell constructors: TriangularCell
// builds a periodic size x size parallelogram cell, and a handful of small
// non-periodic fixtures (Line, Triangle, Hex) serve as hand-checkable inputs
// for neighbor/site/solver tests, grounded on original_source/basis_vectors.py.
package builder
