// helpers_test.go - helper routines for tests
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
	"math/rand"
	"runtime"
	"testing"
)

func newAsserter(t *testing.T) func(cond bool, msg string, args ...interface{}) {
	return func(cond bool, msg string, args ...interface{}) {
		if cond {
			return
		}

		_, file, line, ok := runtime.Caller(1)
		if !ok {
			file = "???"
			line = 0
		}

		s := fmt.Sprintf(msg, args...)
		t.Fatalf("%s: %d: Assertion failed: %s\n", file, line, s)
	}
}

// randomVector returns 'n' bits, each set with probability 'p'
func randomVector(rnd *rand.Rand, n int, p float64) *BitVector {
	b := NewBitVectorBuilder(n)
	for i := 0; i < n; i++ {
		if rnd.Float64() < p {
			b.Set(i)
		}
	}
	return b.Freeze()
}

// oracle answers rank and select by scanning the bitvector bit by bit.
type oracle struct {
	rank []int // rank[i] = set bits in [0, i)
	pos  []int // pos[k] = position of the (k+1)-th set bit
}

func newOracle(bv *BitVector) *oracle {
	n := bv.Len()
	o := &oracle{
		rank: make([]int, n+1),
	}

	for i := 0; i < n; i++ {
		o.rank[i+1] = o.rank[i]
		if ok, _ := bv.Get(i); ok {
			o.rank[i+1]++
			o.pos = append(o.pos, i)
		}
	}
	return o
}

func naiveRank1(bv *BitVector, i int) int {
	var r int
	for j := 0; j < i; j++ {
		if ok, _ := bv.Get(j); ok {
			r++
		}
	}
	return r
}

func naiveSelect1(bv *BitVector, k int) int {
	for i := 0; i < bv.Len(); i++ {
		if ok, _ := bv.Get(i); ok {
			if k == 0 {
				return i
			}
			k--
		}
	}
	return -1
}

// checkAll compares every rank and select answer against the oracle
func checkAll(t *testing.T, bv *BitVector, opt *Options) {
	assert := newAsserter(t)

	r, s, err := BuildWithOptions(bv, opt)
	assert(err == nil, "build failed: %s", err)

	o := newOracle(bv)
	n := bv.Len()
	assert(r.Ones() == len(o.pos), "ones mismatch; exp %d, saw %d", len(o.pos), r.Ones())
	assert(s.Ones() == len(o.pos), "select ones mismatch; exp %d, saw %d", len(o.pos), s.Ones())

	for i := 0; i <= n; i++ {
		x, err := r.Rank1(i)
		assert(err == nil, "rank1(%d): %s", i, err)
		assert(x == o.rank[i], "n %d: rank1(%d): exp %d, saw %d", n, i, o.rank[i], x)
	}

	for k, p := range o.pos {
		x, err := s.Select1(k)
		assert(err == nil, "select1(%d): %s", k, err)
		assert(x == p, "n %d: select1(%d): exp %d, saw %d", n, k, p, x)
	}
}
