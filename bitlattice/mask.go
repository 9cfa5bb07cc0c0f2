// Package bitlattice compiles Site collections into the solver-ready bitset
// form described by spec.md §4.2: dense site indices (Tris, then Mids, then
// Singles), per-site attach/exclude masks, and the full-universe mask.
//
// Mask's word-sliced representation and bit-twiddling (wordIdx = i>>6,
// bitIdx = i&63, trailing-zero iteration) are adapted from
// gaissmai/bart's internal/bitset.BitSet, itself a stripped-down
// bits-and-blooms/bitset — generalized here from a fixed 256-bit set to an
// arbitrary word count, since lattice point/site counts are unbounded.
package bitlattice

import "math/bits"

const wordSize = 64
const log2WordSize = 6

// Mask is a growable bitset over non-negative integers (canonical
// lattice-point indices, or site indices, depending on context).
type Mask []uint64

// wordsNeeded returns how many uint64 words are needed to address bit i.
func wordsNeeded(i uint) int {
	return int(i+wordSize) >> log2WordSize
}

// NewMask preallocates a Mask wide enough to hold bits [0, n).
func NewMask(n int) Mask {
	if n <= 0 {
		return Mask{}
	}
	return make(Mask, wordsNeeded(uint(n-1)))
}

// FullMask returns a Mask with bits [0, n) all set — spec.md's full_mask.
func FullMask(n int) Mask {
	m := NewMask(n)
	for i := 0; i < n; i++ {
		m.Set(uint(i))
	}
	return m
}

func (m *Mask) extend(i uint) {
	needed := wordsNeeded(i)
	if len(*m) < needed {
		grown := make(Mask, needed)
		copy(grown, *m)
		*m = grown
	}
}

// capacity returns the number of addressable bits in m.
func (m Mask) capacity() uint { return uint(len(m)) * wordSize }

// Set sets bit i, growing the mask if necessary.
func (m *Mask) Set(i uint) {
	m.extend(i)
	(*m)[i>>log2WordSize] |= 1 << (i & (wordSize - 1))
}

// Test reports whether bit i is set.
func (m Mask) Test(i uint) bool {
	if i >= m.capacity() {
		return false
	}
	return m[i>>log2WordSize]&(1<<(i&(wordSize-1))) != 0
}

// Clone returns an independent copy of m.
func (m Mask) Clone() Mask {
	c := make(Mask, len(m))
	copy(c, m)
	return c
}

// Union returns m | other as a new Mask (neither operand is mutated).
func (m Mask) Union(other Mask) Mask {
	a, b := m, other
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make(Mask, len(a))
	copy(out, a)
	for i := range b {
		out[i] |= b[i]
	}
	return out
}

// Intersects reports whether m and other share any set bit.
func (m Mask) Intersects(other Mask) bool {
	n := len(m)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if m[i]&other[i] != 0 {
			return true
		}
	}
	return false
}

// Contains reports whether every bit set in sub is also set in m — used by
// the no-rings filter's "does the partial solution contain this forbidden
// clique" test (spec.md §4.3).
func (m Mask) Contains(sub Mask) bool {
	for i, w := range sub {
		if i >= len(m) {
			if w != 0 {
				return false
			}
			continue
		}
		if m[i]&w != w {
			return false
		}
	}
	return true
}

// Equal reports bit-for-bit equality, ignoring trailing all-zero words of
// differing slice length.
func (m Mask) Equal(other Mask) bool {
	n := len(m)
	if len(other) > n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		var a, b uint64
		if i < len(m) {
			a = m[i]
		}
		if i < len(other) {
			b = other[i]
		}
		if a != b {
			return false
		}
	}
	return true
}

// PopCount returns the number of set bits.
func (m Mask) PopCount() int {
	var n int
	for _, w := range m {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether no bit is set.
func (m Mask) IsEmpty() bool {
	for _, w := range m {
		if w != 0 {
			return false
		}
	}
	return true
}

// NextSet returns the lowest set bit >= i, and false if none exists.
func (m Mask) NextSet(i uint) (uint, bool) {
	x := int(i >> log2WordSize)
	if x >= len(m) {
		return 0, false
	}
	word := m[x] >> (i & (wordSize - 1))
	if word != 0 {
		return i + uint(bits.TrailingZeros64(word)), true
	}
	for x++; x < len(m); x++ {
		if m[x] != 0 {
			return uint(x*wordSize + bits.TrailingZeros64(m[x])), true
		}
	}
	return 0, false
}

// Bits returns every set bit as a freshly allocated slice, ascending order.
func (m Mask) Bits() []int {
	out := make([]int, 0, m.PopCount())
	for i, ok := m.NextSet(0); ok; i, ok = m.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}
