// packed.go -- fixed width integer arrays packed into 64-bit words
//
// (c) Sudhi Herle 2018
//
// License GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package rsdict

import (
	"math/bits"
)

// packedArray holds unsigned integers of 'width' bits each. Entry i
// occupies bits [i*width, (i+1)*width) of the word array, low bits first;
// an entry may straddle two words.
//
// A packedArray is written once while an index is built and is read-only
// thereafter.
type packedArray struct {
	v     []uint64
	n     uint64
	width uint
}

// bitsFor returns the number of bits needed to represent every value
// in [0, max]. A width of zero means every value is zero.
func bitsFor(max uint64) uint {
	return uint(bits.Len64(max))
}

// newPackedArray makes an array of 'n' zero entries, each 'width' bits wide.
func newPackedArray(n uint64, width uint) *packedArray {
	if width > 64 {
		panic("rsdict: packed width must be <= 64")
	}

	p := &packedArray{
		n:     n,
		width: width,
	}
	p.v = make([]uint64, words(n*uint64(width)))
	return p
}

// Len returns the number of entries
func (p *packedArray) Len() uint64 {
	return p.n
}

// Width returns the number of bits per entry
func (p *packedArray) Width() uint {
	return p.width
}

// Size returns the storage used in bits (rounded up to whole words).
func (p *packedArray) Size() uint64 {
	return uint64(len(p.v)) * 64
}

// get returns entry 'i'
func (p *packedArray) get(i uint64) uint64 {
	return getBits(p.v, i*uint64(p.width), p.width)
}

// set overwrites entry 'i' with 'val'; bits of 'val' beyond the width
// are discarded.
func (p *packedArray) set(i, val uint64) {
	setBits(p.v, i*uint64(p.width), p.width, val)
}

// append adds 'val' as a new last entry.
func (p *packedArray) append(val uint64) {
	i := p.n
	p.n++
	if need := words(p.n * uint64(p.width)); need > uint64(len(p.v)) {
		p.v = append(p.v, 0)
	}
	p.set(i, val)
}

// freeze trims excess capacity left behind by append
func (p *packedArray) freeze() *packedArray {
	if cap(p.v) > len(p.v) {
		v := make([]uint64, len(p.v))
		copy(v, p.v)
		p.v = v
	}
	return p
}

// bitStream is a sequence of unsigned integers whose widths vary from
// one value to the next; the reader must know the width and bit offset of
// each value it wants.
type bitStream struct {
	v []uint64
	n uint64 // length in bits
}

func newBitStream() *bitStream {
	return &bitStream{}
}

// Len returns the length of the stream in bits
func (b *bitStream) Len() uint64 {
	return b.n
}

// Size returns the storage used in bits (rounded up to whole words).
func (b *bitStream) Size() uint64 {
	return uint64(len(b.v)) * 64
}

// get returns the 'width' bit value at bit offset 'pos'
func (b *bitStream) get(pos uint64, width uint) uint64 {
	return getBits(b.v, pos, width)
}

// append adds the low 'width' bits of 'val' to the end of the stream
func (b *bitStream) append(val uint64, width uint) {
	pos := b.n
	b.n += uint64(width)
	if need := words(b.n); need > uint64(len(b.v)) {
		b.v = append(b.v, 0)
	}
	setBits(b.v, pos, width, val)
}

func (b *bitStream) freeze() *bitStream {
	if cap(b.v) > len(b.v) {
		v := make([]uint64, len(b.v))
		copy(v, b.v)
		b.v = v
	}
	return b
}

// read 'width' bits starting at bit 'pos' of 'v'
func getBits(v []uint64, pos uint64, width uint) uint64 {
	if width == 0 {
		return 0
	}

	w := pos / 64
	o := pos % 64

	x := v[w] >> o
	if o+uint64(width) > 64 {
		x |= v[w+1] << (64 - o)
	}
	return x & widthMask(width)
}

// overwrite 'width' bits starting at bit 'pos' of 'v' with 'val'
func setBits(v []uint64, pos uint64, width uint, val uint64) {
	if width == 0 {
		return
	}

	mask := widthMask(width)
	val &= mask
	w := pos / 64
	o := pos % 64

	v[w] &= ^(mask << o)
	v[w] |= val << o

	if o+uint64(width) > 64 {
		sh := 64 - o
		v[w+1] &= ^(mask >> sh)
		v[w+1] |= val >> sh
	}
}

// number of 64-bit words needed to hold 'nbits'
func words(nbits uint64) uint64 {
	return (nbits + 63) / 64
}

// mask with the low 'width' bits set
func widthMask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}
