package builder

import "errors"

// ErrSizeTooSmall indicates a requested cell size is below the minimum
// needed to form a periodic unit (TriangularCell requires size >= 1).
var ErrSizeTooSmall = errors.New("builder: size must be >= 1")

// ErrBadSpacing indicates a non-positive lattice spacing was supplied via
// WithSpacing.
var ErrBadSpacing = errors.New("builder: spacing must be > 0")
