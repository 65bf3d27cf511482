// bitvector.go -- immutable bitvector
//
// (c) Sudhi Herle 2018
//
// License GPLv2
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package rsdict

import (
	"fmt"
	"math/bits"
	"strings"
)

// BitVector is a fixed length sequence of bits. Bit 'i' lives in
// word i/64 at bit position i%64 (LSB first). A BitVector is never
// modified once constructed; it is safe for concurrent readers.
type BitVector struct {
	v    []uint64
	n    uint64
	ones uint64
}

// NewBitVector makes a bitvector of 'n' bits out of 'v'. The
// bitvector takes ownership of 'v'; callers must not modify it
// afterwards. Any bits at or beyond 'n' are cleared.
func NewBitVector(v []uint64, n int) (*BitVector, error) {
	if n < 0 {
		return nil, fmt.Errorf("bitvector: negative length %d: %w", n, ErrOutOfRange)
	}

	nw := words(uint64(n))
	if uint64(len(v)) < nw {
		return nil, fmt.Errorf("bitvector: %d words can't hold %d bits: %w", len(v), n, ErrOutOfRange)
	}

	return newBitVector(v[:nw], uint64(n)), nil
}

func newBitVector(v []uint64, n uint64) *BitVector {
	if r := n % 64; r > 0 {
		v[len(v)-1] &= widthMask(uint(r))
	}
	return wrapWords(v, n)
}

// wrapWords makes a bitvector over 'v' without modifying it; 'v' may
// be read-only memory. entry: no bits at or beyond 'n' are set.
func wrapWords(v []uint64, n uint64) *BitVector {
	b := &BitVector{
		v: v,
		n: n,
	}
	for _, w := range v {
		b.ones += popcount(w)
	}
	return b
}

// FromString makes a bitvector from a string of '0' and '1'; the
// leftmost character is bit 0. Underscores and white space are
// ignored so long vectors can be grouped for readability.
func FromString(s string) (*BitVector, error) {
	b := NewBitVectorBuilder(len(s))

	var i int
	for _, c := range s {
		switch c {
		case '0':
		case '1':
			b.set(uint64(i))
		case '_', ' ', '\t', '\n':
			continue
		default:
			return nil, fmt.Errorf("bitvector: invalid character %q at %d", c, i)
		}
		i++
	}

	b.n = uint64(i)
	return b.Freeze(), nil
}

// Len returns the number of bits in this bitvector
func (b *BitVector) Len() int {
	return int(b.n)
}

// Ones returns the number of set bits
func (b *BitVector) Ones() int {
	return int(b.ones)
}

// Words returns the number of words in the array
func (b *BitVector) Words() int {
	return len(b.v)
}

// Size returns the storage used in bits
func (b *BitVector) Size() uint64 {
	return uint64(len(b.v)) * 64
}

// Get returns the value of bit 'i'
func (b *BitVector) Get(i int) (bool, error) {
	if i < 0 || uint64(i) >= b.n {
		return false, fmt.Errorf("bitvector: bit %d not in [0, %d): %w", i, b.n, ErrOutOfRange)
	}
	return b.isSet(uint64(i)), nil
}

// WordAt returns the 'width' bits starting at bit 'i' as an integer; bit
// 'i' is the least significant bit of the result. Positions at or beyond
// Len() read as zero.
func (b *BitVector) WordAt(i, width int) (uint64, error) {
	if i < 0 || uint64(i) > b.n {
		return 0, fmt.Errorf("bitvector: bit %d not in [0, %d]: %w", i, b.n, ErrOutOfRange)
	}
	if width < 0 || width > 64 {
		return 0, fmt.Errorf("bitvector: word width %d not in [0, 64]: %w", width, ErrOutOfRange)
	}
	return b.wordAt(uint64(i), uint(width)), nil
}

// String returns the bits as '0' and '1' characters, bit 0 first.
func (b *BitVector) String() string {
	var s strings.Builder

	s.Grow(int(b.n))
	for i := uint64(0); i < b.n; i++ {
		if b.isSet(i) {
			s.WriteByte('1')
		} else {
			s.WriteByte('0')
		}
	}
	return s.String()
}

func (b *BitVector) isSet(i uint64) bool {
	return 1 == (1 & (b.v[i/64] >> (i % 64)))
}

// entry: width <= 64. The trailing word is masked at construction, so
// only reads past the last word need to be guarded.
func (b *BitVector) wordAt(i uint64, width uint) uint64 {
	if width == 0 {
		return 0
	}

	w := i / 64
	o := i % 64
	nw := uint64(len(b.v))

	var x uint64
	if w < nw {
		x = b.v[w] >> o
	}
	if o+uint64(width) > 64 && w+1 < nw {
		x |= b.v[w+1] << (64 - o)
	}
	return x & widthMask(width)
}

// BitVectorBuilder accumulates set bits for a BitVector. A builder is
// not safe for concurrent use.
type BitVectorBuilder struct {
	v  []uint64
	n  uint64
	bv *BitVector
}

// NewBitVectorBuilder prepares to build a bitvector of 'n' bits, all
// initially clear.
func NewBitVectorBuilder(n int) *BitVectorBuilder {
	if n < 0 {
		n = 0
	}

	b := &BitVectorBuilder{
		v: make([]uint64, words(uint64(n))),
		n: uint64(n),
	}
	return b
}

// Set sets the bit 'i' in the bitvector
func (b *BitVectorBuilder) Set(i int) error {
	if b.bv != nil {
		return fmt.Errorf("bitvector: builder already frozen")
	}
	if i < 0 || uint64(i) >= b.n {
		return fmt.Errorf("bitvector: bit %d not in [0, %d): %w", i, b.n, ErrOutOfRange)
	}

	b.set(uint64(i))
	return nil
}

func (b *BitVectorBuilder) set(i uint64) {
	b.v[i/64] |= uint64(1) << (i % 64)
}

// Freeze returns the finished bitvector. Later calls return the same
// bitvector and Set fails.
func (b *BitVectorBuilder) Freeze() *BitVector {
	if b.bv == nil {
		b.bv = newBitVector(b.v[:words(b.n)], b.n)
		b.v = nil
	}
	return b.bv
}

func popcount(x uint64) uint64 {
	return uint64(bits.OnesCount64(x))
}
