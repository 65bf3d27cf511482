// doc.go - top level documentation
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

// Package rsdict implements a static indexable dictionary: given an
// immutable bitvector of N bits it answers
//
//	Rank1(i):   number of set bits in [0, i)
//	Select1(k): position of the (k+1)-th set bit
//
// in constant time, using o(N) bits of index on top of the bitvector.
//
// Rank uses two levels of cumulative counts (big blocks of ~log²N bits,
// small blocks of ~log N/2 bits) and a lookup table over all small block
// patterns. Select groups the set bits into blocks of S ones; a block
// whose span is long stores its positions outright, a short one stores a
// 4-ary tree of counts over its w-bit chunks that is descended to the
// right chunk before a final table lookup.
//
// All index sizes are bit-packed to the minimum width their values
// need. The structures are built once by Build() and never change;
// any number of goroutines may query them concurrently.
//
// Bitvectors can be saved with WriteVectorFile() and memory mapped back
// with OpenVectorFile(). Only the raw bits are stored; the index is
// rebuilt after loading.
package rsdict
