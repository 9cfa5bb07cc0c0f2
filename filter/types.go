// Package filter implements the two structural pre-solver filters from
// spec.md §4.3/§4.4: the no-rings filter (forbidden-clique bitmasks derived
// from minimal 4/5/6-cycles of the neighbor graph) and the similarity
// filter (heuristic symmetry-equivalence deduplication of candidate sites).
package filter

import "errors"

// ErrTooFewPoints indicates fewer than 4 canonical points were supplied to
// the no-rings filter — no cycle of the required length can exist.
var ErrTooFewPoints = errors.New("filter: need at least 4 canonical points to search for rings")

// ErrNegativeTolerance indicates a negative difference_distance was passed
// to the similarity filter.
var ErrNegativeTolerance = errors.New("filter: difference_distance must be >= 0")
