// Package xerrors provides the shared error-wrapping helper used by
// lattice, bitlattice, builder, decode, and cull so that those packages
// report failures with consistent "<pkg>: <method>: ...: %w" context, the
// way lvlath's per-package denseErrorf/builderErrorf helpers do. The site,
// filter, and solver packages return their sentinel errors unwrapped.
package xerrors

import "fmt"

// Wrap formats a sentinel error with package and method context in the
// "<pkg>: <method>: %w" shape, after the teacher corpus's per-package
// helpers (e.g. matrix's denseErrorf, builder's builderErrorf).
func Wrap(pkg, method string, err error) error {
	return fmt.Errorf("%s: %s: %w", pkg, method, err)
}

// Wrapf is Wrap with a formatted detail message inserted between the method
// and the wrapped sentinel.
func Wrapf(pkg, method, format string, err error, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %s: %s: %w", pkg, method, detail, err)
}
