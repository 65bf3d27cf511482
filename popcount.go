// popcount.go -- lookup tables for popcount and in-word select
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
	"fmt"
)

// Largest pattern width we are willing to tabulate: 2^16 patterns.
const MaxWordBits = 16

// PopcountTable answers prefix-popcount and in-pattern select queries
// for every w-bit pattern by table lookup. Both the rank and select
// indexes built from one bitvector share a single table.
type PopcountTable struct {
	w uint

	// prefix[p*(w+1) + j] is the number of set bits among the low j
	// bits of pattern p.
	prefix *packedArray

	// pos[p*w + k] is the offset of the (k+1)-th set bit of pattern p;
	// entries with k >= popcount(p) are zero.
	pos *packedArray
}

// NewPopcountTable builds the tables for all patterns of 'w' bits.
// This takes O(2^w * w) time.
func NewPopcountTable(w int) (*PopcountTable, error) {
	if w < 1 || w > MaxWordBits {
		return nil, fmt.Errorf("popcount: width %d not in [1, %d]: %w", w, MaxWordBits, ErrInvalidOption)
	}
	return newPopcountTable(uint(w)), nil
}

func newPopcountTable(w uint) *PopcountTable {
	np := uint64(1) << w
	ww := uint64(w)

	t := &PopcountTable{
		w:      w,
		prefix: newPackedArray(np*(ww+1), bitsFor(ww)),
		pos:    newPackedArray(np*ww, bitsFor(ww-1)),
	}

	for p := uint64(0); p < np; p++ {
		var r uint64

		base := p * (ww + 1)
		for j := uint64(0); j < ww; j++ {
			t.prefix.set(base+j, r)
			if 1 == (1 & (p >> j)) {
				t.pos.set(p*ww+r, j)
				r++
			}
		}
		t.prefix.set(base+ww, r)
	}
	return t
}

// Width returns the pattern width in bits
func (t *PopcountTable) Width() int {
	return int(t.w)
}

// Size returns the storage used by both tables in bits
func (t *PopcountTable) Size() uint64 {
	return t.prefix.Size() + t.pos.Size()
}

// Prefix returns the number of set bits among the low 'j' bits of 'pattern'
func (t *PopcountTable) Prefix(pattern uint64, j int) (int, error) {
	if pattern >= uint64(1)<<t.w {
		return 0, fmt.Errorf("popcount: pattern %#x wider than %d bits: %w", pattern, t.w, ErrOutOfRange)
	}
	if j < 0 || j > int(t.w) {
		return 0, fmt.Errorf("popcount: prefix %d not in [0, %d]: %w", j, t.w, ErrOutOfRange)
	}
	return int(t.prefixOf(pattern, uint64(j))), nil
}

// Popcount returns the number of set bits in the low w bits of 'pattern'.
func (t *PopcountTable) Popcount(pattern uint64) int {
	return int(t.popcount(pattern & widthMask(t.w)))
}

// PositionOfKthSetBit returns the offset within 'pattern' of its (k+1)-th
// set bit.
func (t *PopcountTable) PositionOfKthSetBit(pattern uint64, k int) (int, error) {
	if pattern >= uint64(1)<<t.w {
		return 0, fmt.Errorf("popcount: pattern %#x wider than %d bits: %w", pattern, t.w, ErrOutOfRange)
	}
	if k < 0 || uint64(k) >= t.popcount(pattern) {
		return 0, fmt.Errorf("popcount: pattern %#x has no set bit of rank %d: %w", pattern, k, ErrNotFound)
	}
	return int(t.selectIn(pattern, uint64(k))), nil
}

func (t *PopcountTable) prefixOf(p, j uint64) uint64 {
	return t.prefix.get(p*uint64(t.w+1) + j)
}

func (t *PopcountTable) popcount(p uint64) uint64 {
	return t.prefix.get(p*uint64(t.w+1) + uint64(t.w))
}

func (t *PopcountTable) selectIn(p, k uint64) uint64 {
	return t.pos.get(p*uint64(t.w) + k)
}
