// options.go -- tuning knobs for the rank/select index
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
	"math"
	"math/bits"
)

// Options determines the block sizes of the index. A zero value for
// any field selects a size derived from the length N of the bitvector
// (with lg = ceil(log2 N)):
//
//	WordBits    (lg+1)/2, clamped to [2, 16]
//	BlockWords  4 * WordBits
//	SelectGroup lg*lg, at least 4
//
// Smaller blocks make queries faster and the index larger.
type Options struct {
	// WordBits is the small block width; it is also the width of the
	// popcount lookup table and of the leaves of dense select blocks.
	WordBits int

	// BlockWords is the number of small blocks in a big block.
	BlockWords int

	// SelectGroup is the number of set bits in each select block.
	SelectGroup int
}

// DefaultOptions returns Options that derive every size from the
// length of the bitvector.
func DefaultOptions() *Options {
	return &Options{}
}

// resolved block parameters
type params struct {
	w     uint   // small block width
	bb    uint64 // big block width in bits
	group uint64 // ones per select block
}

func (o *Options) resolve(n uint64) (params, error) {
	var p params

	if o == nil {
		o = DefaultOptions()
	}

	switch {
	case o.WordBits < 0 || o.WordBits > MaxWordBits:
		return p, fmt.Errorf("options: word bits %d not in [1, %d]: %w", o.WordBits, MaxWordBits, ErrInvalidOption)
	case o.BlockWords < 0:
		return p, fmt.Errorf("options: block words %d is negative: %w", o.BlockWords, ErrInvalidOption)
	case o.SelectGroup < 0 || uint64(o.SelectGroup) > math.MaxUint32:
		return p, fmt.Errorf("options: select group %d not in [0, %d]: %w", o.SelectGroup, uint64(math.MaxUint32), ErrInvalidOption)
	}

	lg := uint64(1)
	if n > 2 {
		lg = uint64(bits.Len64(n - 1))
	}

	p.w = uint(o.WordBits)
	if p.w == 0 {
		p.w = uint(min(max((lg+1)/2, 2), MaxWordBits))
	}

	nb := uint64(o.BlockWords)
	if nb == 0 {
		nb = 4 * uint64(p.w)
	}
	if nb > math.MaxUint64/uint64(p.w) {
		return p, fmt.Errorf("options: %d blocks of %d bits overflow a big block: %w", nb, p.w, ErrInvalidOption)
	}
	p.bb = nb * uint64(p.w)

	p.group = uint64(o.SelectGroup)
	if p.group == 0 {
		p.group = max(lg*lg, 4)
	}
	return p, nil
}
