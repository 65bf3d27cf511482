// rsdict.go - rank/select dictionary construction and query interface
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
	"strings"

	"github.com/dustin/go-humanize"
)

// Ranker counts set bits in a prefix of a bitvector
type Ranker interface {
	// Rank1 returns the number of set bits in [0, i) for 0 <= i <= Len()
	Rank1(i int) (int, error)

	// Len returns the length of the bitvector in bits
	Len() int

	// Ones returns the number of set bits in the bitvector
	Ones() int
}

// Selector locates set bits by rank
type Selector interface {
	// Select1 returns the position of the (k+1)-th set bit for
	// 0 <= k < Ones()
	Select1(k int) (int, error)

	// Ones returns the number of set bits in the bitvector
	Ones() int
}

var _ Ranker = &RankIndex{}
var _ Selector = &SelectIndex{}

var _ Ranker = &Dict{}
var _ Selector = &Dict{}

// Build constructs the rank and select indexes for 'bv' with block
// sizes derived from its length.
func Build(bv *BitVector) (*RankIndex, *SelectIndex) {
	r, s, err := BuildWithOptions(bv, nil)
	if err != nil {
		panic(fmt.Sprintf("rsdict: default options rejected: %s", err))
	}
	return r, s
}

// BuildWithOptions constructs the rank and select indexes for 'bv'. A nil
// 'opt' is the same as DefaultOptions(). Both indexes share one popcount
// table and refer to 'bv'; none of them are modified after this returns.
func BuildWithOptions(bv *BitVector, opt *Options) (*RankIndex, *SelectIndex, error) {
	p, err := opt.resolve(bv.n)
	if err != nil {
		return nil, nil, err
	}

	tbl := newPopcountTable(p.w)
	r := newRankIndex(bv, tbl, p.bb)
	s := newSelectIndex(r, p.group)
	return r, s, nil
}

// Dict bundles a bitvector with its rank and select indexes.
type Dict struct {
	bv *BitVector
	r  *RankIndex
	s  *SelectIndex
}

// New builds a Dict for 'bv'; see BuildWithOptions for 'opt'.
func New(bv *BitVector, opt *Options) (*Dict, error) {
	r, s, err := BuildWithOptions(bv, opt)
	if err != nil {
		return nil, err
	}

	d := &Dict{
		bv: bv,
		r:  r,
		s:  s,
	}
	return d, nil
}

// Get returns the value of bit 'i'
func (d *Dict) Get(i int) (bool, error) {
	return d.bv.Get(i)
}

// Rank1 returns the number of set bits in [0, i)
func (d *Dict) Rank1(i int) (int, error) {
	return d.r.Rank1(i)
}

// Rank0 returns the number of clear bits in [0, i)
func (d *Dict) Rank0(i int) (int, error) {
	return d.r.Rank0(i)
}

// Select1 returns the position of the (k+1)-th set bit
func (d *Dict) Select1(k int) (int, error) {
	return d.s.Select1(k)
}

// Len returns the length of the bitvector in bits
func (d *Dict) Len() int {
	return d.bv.Len()
}

// Ones returns the number of set bits
func (d *Dict) Ones() int {
	return d.r.Ones()
}

// BitVector returns the underlying bitvector
func (d *Dict) BitVector() *BitVector {
	return d.bv
}

// RankIndex returns the rank half of the dictionary
func (d *Dict) RankIndex() *RankIndex {
	return d.r
}

// SelectIndex returns the select half of the dictionary
func (d *Dict) SelectIndex() *SelectIndex {
	return d.s
}

// Size returns the number of bits used by the indexes and the popcount
// table; the bitvector itself is not included.
func (d *Dict) Size() uint64 {
	return d.r.Size() + d.s.Size() + d.r.tbl.Size()
}

// DumpMeta writes the structure sizes of the dictionary to 'w'
func (d *Dict) DumpMeta(w io.Writer) {
	n := d.bv.Size()
	fmt.Fprintf(w, "rsdict: %d bits, %d ones\n", d.bv.n, d.r.ones)
	fmt.Fprintf(w, "  bitvector: %d bits (%s)\n", n, humanize.IBytes(n/8))
	fmt.Fprintf(w, "  table: %d-bit patterns, %d bits (%s)\n", d.r.tbl.w, d.r.tbl.Size(),
		humanize.IBytes(d.r.tbl.Size()/8))
	d.r.DumpMeta(w)
	d.s.DumpMeta(w)

	if n > 0 {
		fmt.Fprintf(w, "  overhead: %d bits (%4.2f%% of bitvector)\n", d.Size(),
			100.0*float64(d.Size())/float64(n))
	}
}

// Desc returns a human readable summary of the dictionary
func (d *Dict) Desc() string {
	var w strings.Builder

	d.DumpMeta(&w)
	return w.String()
}
