package bitlattice_test

import (
	"testing"

	"github.com/crystacean/lattice/bitlattice"
)

// FuzzMask drives the word-sliced bitset through arbitrary bit positions,
// holding the invariants the solver's hot loop leans on: Set/Test
// round-trip, PopCount, lowest-bit iteration, and Union/Contains/
// Intersects consistency across word boundaries.
func FuzzMask(f *testing.F) {
	f.Add(uint(3), uint(70), uint(128))
	f.Add(uint(0), uint(0), uint(63))
	f.Add(uint(63), uint(64), uint(65))
	f.Fuzz(func(t *testing.T, a, b, c uint) {
		a %= 1024
		b %= 1024
		c %= 1024

		var m bitlattice.Mask
		m.Set(a)
		m.Set(b)
		if !m.Test(a) || !m.Test(b) {
			t.Fatalf("Set(%d)/Set(%d) not visible via Test", a, b)
		}

		want := 2
		if a == b {
			want = 1
		}
		if got := m.PopCount(); got != want {
			t.Fatalf("PopCount = %d, want %d", got, want)
		}

		lo := a
		if b < a {
			lo = b
		}
		if first, ok := m.NextSet(0); !ok || first != lo {
			t.Fatalf("NextSet(0) = (%d, %v), want (%d, true)", first, ok, lo)
		}

		var o bitlattice.Mask
		o.Set(c)
		u := m.Union(o)
		if !u.Contains(m) || !u.Contains(o) {
			t.Fatalf("Union does not contain both operands")
		}
		if m.Intersects(o) != (c == a || c == b) {
			t.Fatalf("Intersects(%d in {%d,%d}) inconsistent", c, a, b)
		}

		bits := u.Bits()
		for i := 1; i < len(bits); i++ {
			if bits[i] <= bits[i-1] {
				t.Fatalf("Bits not strictly ascending: %v", bits)
			}
		}
	})
}
