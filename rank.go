// rank.go -- constant time rank over a bitvector
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
	"io"

	"github.com/dustin/go-humanize"
)

// RankIndex answers rank queries on a bitvector in constant time using
// two levels of cumulative counts:
//
//   - big[b]: number of set bits before big block b (bb bits per block)
//   - small[s]: number of set bits between the start of the enclosing
//     big block and small block s (sb bits per block)
//
// The remainder inside a small block is resolved with the popcount
// table. Both count arrays are bit-packed to the minimum width that
// holds their largest possible value.
type RankIndex struct {
	bv  *BitVector
	tbl *PopcountTable

	big   *packedArray
	small *packedArray

	sb   uint64
	bb   uint64
	ones uint64
}

// single pass over the bitvector; each small block is one table lookup.
// There is one trailing entry in each array so that Rank1(N) needs no
// special case.
func newRankIndex(bv *BitVector, tbl *PopcountTable, bb uint64) *RankIndex {
	n := bv.n
	sb := uint64(tbl.w)

	r := &RankIndex{
		bv:    bv,
		tbl:   tbl,
		big:   newPackedArray(n/bb+1, bitsFor(n)),
		small: newPackedArray(n/sb+1, bitsFor(bb)),
		sb:    sb,
		bb:    bb,
	}

	var rank, base uint64
	ns := r.small.Len()
	for s := uint64(0); s < ns; s++ {
		pos := s * sb
		if pos%bb == 0 {
			base = rank
			r.big.set(pos/bb, rank)
		}
		r.small.set(s, rank-base)
		rank += tbl.popcount(bv.wordAt(pos, tbl.w))
	}

	r.ones = rank
	return r
}

// Rank1 returns the number of set bits in [0, i).
func (r *RankIndex) Rank1(i int) (int, error) {
	if i < 0 || uint64(i) > r.bv.n {
		return 0, fmt.Errorf("rank1: %d not in [0, %d]: %w", i, r.bv.n, ErrOutOfRange)
	}
	return int(r.rank1(uint64(i))), nil
}

// Rank0 returns the number of clear bits in [0, i).
func (r *RankIndex) Rank0(i int) (int, error) {
	if i < 0 || uint64(i) > r.bv.n {
		return 0, fmt.Errorf("rank0: %d not in [0, %d]: %w", i, r.bv.n, ErrOutOfRange)
	}
	return i - int(r.rank1(uint64(i))), nil
}

// entry: i <= N
func (r *RankIndex) rank1(i uint64) uint64 {
	s := i / r.sb
	off := i - s*r.sb

	rank := r.big.get(i/r.bb) + r.small.get(s)
	if off > 0 {
		rank += r.tbl.prefixOf(r.bv.wordAt(s*r.sb, r.tbl.w), off)
	}
	return rank
}

// Len returns the number of bits in the underlying bitvector
func (r *RankIndex) Len() int {
	return int(r.bv.n)
}

// Ones returns the total number of set bits
func (r *RankIndex) Ones() int {
	return int(r.ones)
}

// Size returns the number of bits used by the index, excluding the
// bitvector and the shared popcount table.
func (r *RankIndex) Size() uint64 {
	return r.big.Size() + r.small.Size()
}

// Table returns the popcount table used by this index
func (r *RankIndex) Table() *PopcountTable {
	return r.tbl
}

// DumpMeta writes the block parameters and sizes of the index to 'w'
func (r *RankIndex) DumpMeta(w io.Writer) {
	fmt.Fprintf(w, "  rank: big block %d bits, small block %d bits\n", r.bb, r.sb)
	fmt.Fprintf(w, "    big:   %d x %d bits (%s)\n", r.big.Len(), r.big.Width(), humanize.IBytes(r.big.Size()/8))
	fmt.Fprintf(w, "    small: %d x %d bits (%s)\n", r.small.Len(), r.small.Width(), humanize.IBytes(r.small.Size()/8))
}
