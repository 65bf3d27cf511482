// naive.go -- linear scan rank and select
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

package main

import (
	"math/bits"

	"github.com/opencoff/go-rsdict"
)

// naiveRank1 counts the set bits in [0, i) a word at a time
func naiveRank1(bv *rsdict.BitVector, i int) int {
	var r int
	for j := 0; j < i; j += 64 {
		w, _ := bv.WordAt(j, min(64, i-j))
		r += bits.OnesCount64(w)
	}
	return r
}

// naiveSelect1 scans for the (k+1)-th set bit; -1 if there is none.
func naiveSelect1(bv *rsdict.BitVector, k int) int {
	n := bv.Len()
	for j := 0; j < n; j += 64 {
		w, _ := bv.WordAt(j, min(64, n-j))
		c := bits.OnesCount64(w)
		if k >= c {
			k -= c
			continue
		}

		for ; k > 0; k-- {
			w &= w - 1
		}
		return j + bits.TrailingZeros64(w)
	}
	return -1
}
