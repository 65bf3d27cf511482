// select.go -- select over a bitvector via grouped set bits
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
	"math/bits"

	"github.com/dustin/go-humanize"
)

// Fan-out of the count tree in dense blocks
const _Arity = 4

// a tree over 2^64 leaves is at most this tall
const _MaxLevels = 33

type blockKind uint64

const (
	_Sparse blockKind = 0
	_Dense  blockKind = 1
)

// SelectIndex answers select queries by partitioning the set bits into
// consecutive groups of 'group' ones. Block j holds set bits
// [j*group, (j+1)*group) and covers the half-open bit range
// [start[j], start[j+1]); a block ends one past its last set bit.
// The final block may hold fewer ones and always ends at N.
//
// A block spanning at least group^2 bits is sparse: the positions of its
// ones are stored verbatim. Other blocks are dense: they have a 4-ary
// tree of set bit counts over w-bit chunks of the span; a query walks
// down the tree to a chunk and finishes with a table lookup.
//
// Only the inner levels of a dense tree are stored. The root count is the
// number of ones in the block and the leaf counts are table lookups on
// the chunks. Each level is packed to the width of the largest count it
// can hold: bitsFor(min(group, w*4^level)).
type SelectIndex struct {
	bv  *BitVector
	tbl *PopcountTable

	group uint64
	ones  uint64

	// block j: start[j], kind[j] and ptr[j]. start has a trailing
	// sentinel holding the end of the last block.
	start *packedArray
	kind  *packedArray
	ptr   *packedArray

	// positions of ones in sparse blocks, 'group' per block
	sparse *packedArray

	// inner levels of the dense count trees, each tree laid out top
	// down, level by level. ptr[j] of a dense block is the bit offset
	// of its tree.
	nodes *bitStream

	// node width per tree level; level 0 are the leaves
	widths [_MaxLevels]uint

	nsparse uint64
	ndense  uint64
}

// selectBuilder carries the scratch state used while building a
// SelectIndex
type selectBuilder struct {
	s    *SelectIndex
	ptrs []uint64
	lvl  [][]uint64
}

func newSelectIndex(r *RankIndex, group uint64) *SelectIndex {
	bv := r.bv
	n := bv.n

	s := &SelectIndex{
		bv:     bv,
		tbl:    r.tbl,
		group:  group,
		ones:   r.ones,
		start:  newPackedArray(0, bitsFor(n)),
		kind:   newPackedArray(0, 1),
		sparse: newPackedArray(0, bitsFor(n)),
		nodes:  newBitStream(),
	}

	cover := uint64(r.tbl.w)
	for l := range s.widths {
		s.widths[l] = bitsFor(min(cover, group))
		if cover <= group/_Arity {
			cover *= _Arity
		} else {
			cover = group
		}
	}

	b := &selectBuilder{
		s: s,
	}

	var start, cnt uint64
	for i, w := range bv.v {
		for w != 0 {
			pos := uint64(i)*64 + uint64(bits.TrailingZeros64(w))
			w &= w - 1

			cnt++
			if cnt == group {
				b.closeBlock(start, pos+1)
				start = pos + 1
				cnt = 0
			}
		}
	}

	if cnt > 0 {
		b.closeBlock(start, n)
		start = n
	}

	// sentinel
	s.start.append(start)

	// sparse ordinals and dense bit offsets share one pointer array
	var maxp uint64
	for _, p := range b.ptrs {
		maxp = max(maxp, p)
	}
	s.ptr = newPackedArray(uint64(len(b.ptrs)), bitsFor(maxp))
	for j, p := range b.ptrs {
		s.ptr.set(uint64(j), p)
	}

	s.start.freeze()
	s.kind.freeze()
	s.sparse.freeze()
	s.nodes.freeze()
	return s
}

// record block [start, end)
func (b *selectBuilder) closeBlock(start, end uint64) {
	s := b.s

	s.start.append(start)
	if end-start >= s.group*s.group {
		s.kind.append(uint64(_Sparse))
		b.ptrs = append(b.ptrs, s.nsparse)
		s.nsparse++
		b.addSparse(start, end)
		return
	}

	s.kind.append(uint64(_Dense))
	b.ptrs = append(b.ptrs, s.nodes.Len())
	s.ndense++
	b.addDense(start, end)
}

func (b *selectBuilder) addSparse(start, end uint64) {
	s := b.s
	for pos := start; pos < end; pos += 64 {
		w := s.bv.wordAt(pos, uint(min(64, end-pos)))
		for w != 0 {
			s.sparse.append(pos + uint64(bits.TrailingZeros64(w)))
			w &= w - 1
		}
	}
}

// build the count tree bottom up, then emit the levels strictly between
// the root and the leaves, top down.
func (b *selectBuilder) addDense(start, end uint64) {
	s := b.s
	cw := uint64(s.tbl.w)

	nleaf := (end - start + cw - 1) / cw
	leaves := make([]uint64, nleaf)
	for c := range leaves {
		pos := start + uint64(c)*cw
		leaves[c] = s.tbl.popcount(s.bv.wordAt(pos, uint(min(cw, end-pos))))
	}

	lvl := append(b.lvl[:0], leaves)
	for cur := leaves; len(cur) > 1; {
		up := make([]uint64, (len(cur)+_Arity-1)/_Arity)
		for i, c := range cur {
			up[i/_Arity] += c
		}
		lvl = append(lvl, up)
		cur = up
	}

	for l := len(lvl) - 2; l >= 1; l-- {
		for _, c := range lvl[l] {
			s.nodes.append(c, s.widths[l])
		}
	}
	b.lvl = lvl
}

// Select1 returns the position of the (k+1)-th set bit.
func (s *SelectIndex) Select1(k int) (int, error) {
	if k < 0 || uint64(k) >= s.ones {
		return 0, fmt.Errorf("select1: rank %d not in [0, %d): %w", k, s.ones, ErrNotFound)
	}
	return int(s.select1(uint64(k))), nil
}

// entry: k < ones
func (s *SelectIndex) select1(k uint64) uint64 {
	j := k / s.group
	r := k - j*s.group

	start := s.start.get(j)
	p := s.ptr.get(j)
	if blockKind(s.kind.get(j)) == _Sparse {
		return s.sparse.get(p*s.group + r)
	}

	cw := uint64(s.tbl.w)
	end := s.start.get(j + 1)

	// level sizes, leaves first
	var sizes [_MaxLevels]uint64
	nl := 0
	for x := (end - start + cw - 1) / cw; ; x = (x + _Arity - 1) / _Arity {
		sizes[nl] = x
		nl++
		if x <= 1 {
			break
		}
	}

	// descend from the root: pick the first child whose count exceeds
	// what is left of r. The last child is never counted, so a leaf that
	// runs past the end of the span is never read as a count.
	var node uint64
	off := p
	for l := nl - 2; l >= 0; l-- {
		sz := sizes[l]
		wd := s.widths[l]
		child := node * _Arity
		last := min(child+_Arity, sz) - 1
		for ; child < last; child++ {
			var c uint64
			if l == 0 {
				c = s.tbl.popcount(s.bv.wordAt(start+child*cw, s.tbl.w))
			} else {
				c = s.nodes.get(off+child*uint64(wd), wd)
			}
			if r < c {
				break
			}
			r -= c
		}
		node = child
		off += sz * uint64(wd)
	}

	pos := start + node*cw
	return pos + s.tbl.selectIn(s.bv.wordAt(pos, s.tbl.w), r)
}

// Ones returns the total number of set bits
func (s *SelectIndex) Ones() int {
	return int(s.ones)
}

// Group returns the number of set bits per select block
func (s *SelectIndex) Group() int {
	return int(s.group)
}

// Blocks returns the number of select blocks
func (s *SelectIndex) Blocks() int {
	return int(s.kind.Len())
}

// SparseBlocks returns the number of blocks that store explicit positions
func (s *SelectIndex) SparseBlocks() int {
	return int(s.nsparse)
}

// DenseBlocks returns the number of blocks that store a count tree
func (s *SelectIndex) DenseBlocks() int {
	return int(s.ndense)
}

// Size returns the number of bits used by the index, excluding the
// bitvector and the shared popcount table.
func (s *SelectIndex) Size() uint64 {
	return s.start.Size() + s.kind.Size() + s.ptr.Size() + s.sparse.Size() + s.nodes.Size()
}

// DumpMeta writes the block parameters and sizes of the index to 'w'
func (s *SelectIndex) DumpMeta(w io.Writer) {
	fmt.Fprintf(w, "  select: %d ones per block; %d blocks (%d sparse, %d dense)\n",
		s.group, s.Blocks(), s.nsparse, s.ndense)
	fmt.Fprintf(w, "    meta:   %d x (%d + %d + %d) bits (%s)\n", s.kind.Len(),
		s.start.Width(), s.kind.Width(), s.ptr.Width(),
		humanize.IBytes((s.start.Size()+s.kind.Size()+s.ptr.Size())/8))
	fmt.Fprintf(w, "    sparse: %d x %d bits (%s)\n", s.sparse.Len(), s.sparse.Width(), humanize.IBytes(s.sparse.Size()/8))
	fmt.Fprintf(w, "    dense:  %d bits, level widths %v (%s)\n", s.nodes.Len(), s.levelWidths(), humanize.IBytes(s.nodes.Size()/8))
}

// node widths from the leaves up to the first level that holds a whole block
func (s *SelectIndex) levelWidths() []uint {
	var v []uint
	for _, wd := range s.widths {
		v = append(v, wd)
		if wd == bitsFor(s.group) {
			break
		}
	}
	return v
}
