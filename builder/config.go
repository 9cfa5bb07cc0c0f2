package builder

// defaultSpacing is original_source/basis_vectors.py's hard-coded Si-Si
// spacing constant (the "3.076" scale factor applied to both basis
// vectors).
const defaultSpacing = 3.076

// cellConfig holds the resolved options for a lattice-cell constructor,
// mirroring lvlath/builder's builderConfig: a small, private struct filled
// in by a chain of CellOption values before the constructor runs.
type cellConfig struct {
	spacing float64
}

func newCellConfig(opts ...CellOption) *cellConfig {
	cfg := &cellConfig{spacing: defaultSpacing}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// CellOption mutates a cellConfig before a constructor runs, the lattice
// analogue of lvlath/builder's BuilderOption.
type CellOption func(*cellConfig)

// WithSpacing overrides the default Si-Si spacing used to scale both basis
// vectors. Panics on a non-positive value, matching the fast-fail-on-option
// convention of lvlath/builder's WithX constructors.
func WithSpacing(spacing float64) CellOption {
	if spacing <= 0 {
		panic(ErrBadSpacing)
	}
	return func(cfg *cellConfig) { cfg.spacing = spacing }
}

// basisVectors returns the two basis vectors scaled by cfg.spacing,
// reproducing original_source/basis_vectors.py's vec_x/vec_y:
//
//	vec_x = (1.5, 0)       / 1.5 * spacing
//	vec_y = (0.75, sqrt(3)/2*1.5) / 1.5 * spacing
func (cfg *cellConfig) basisVectors() (vecX, vecY [2]float64) {
	vecX = [2]float64{cfg.spacing, 0}
	vecY = [2]float64{0.5 * cfg.spacing, 0.866025403784439 * cfg.spacing}
	return vecX, vecY
}
