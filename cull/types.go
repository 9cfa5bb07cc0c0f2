// Package cull implements the post-hoc, offline culling pass from
// spec.md §4.6: given a batch of emitted solutions (as decode.Envelope
// documents), group by connection-type counts and drop exact geometric
// duplicates under periodic wrap, keeping one representative per
// equivalence class. This is deliberately separate from and stricter than
// filter.DeduplicateSimilar, which is a pre-solver heuristic (spec.md §4.4
// note: "the post-hoc culler is authoritative").
package cull

import "errors"

// ErrNoEnvelopes indicates Dedupe was called with zero input documents.
var ErrNoEnvelopes = errors.New("cull: no solution documents supplied")

// ErrNonPositiveCell indicates a non-positive cell dimension was supplied;
// periodic wrap is undefined without one.
var ErrNonPositiveCell = errors.New("cull: cell dimensions must be positive")

// connType is the (count_tri, count_mid, count_single) grouping key from
// spec.md §4.6.
type connType struct{ tri, mid, single int }
