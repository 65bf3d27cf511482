// select_test.go -- test suite for the select index
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
	"errors"
	"math/rand"
	"testing"
)

func TestSelectSimple(t *testing.T) {
	assert := newAsserter(t)

	bv, err := FromString("10110100")
	assert(err == nil, "parse: %s", err)

	_, s := Build(bv)
	assert(s.Ones() == 4, "ones: exp 4, saw %d", s.Ones())

	exp := []int{0, 2, 3, 5}
	for k, e := range exp {
		x, err := s.Select1(k)
		assert(err == nil, "select1(%d): %s", k, err)
		assert(x == e, "select1(%d): exp %d, saw %d", k, e, x)
	}

	_, err = s.Select1(4)
	assert(errors.Is(err, ErrNotFound), "select1(4): exp not found, saw %v", err)
	_, err = s.Select1(-1)
	assert(errors.Is(err, ErrNotFound), "select1(-1): exp not found, saw %v", err)
}

// Every block spans fewer than group^2 bits
func TestSelectDense(t *testing.T) {
	assert := newAsserter(t)

	rnd := rand.New(rand.NewSource(3))
	bv := randomVector(rnd, 20000, 0.5)
	opt := &Options{SelectGroup: 64}

	_, s, err := BuildWithOptions(bv, opt)
	assert(err == nil, "build: %s", err)
	assert(s.SparseBlocks() == 0, "exp no sparse blocks, saw %d", s.SparseBlocks())
	assert(s.DenseBlocks() == s.Blocks(), "dense %d != blocks %d", s.DenseBlocks(), s.Blocks())

	checkAll(t, bv, opt)
}

// Every block spans at least group^2 bits
func TestSelectSparse(t *testing.T) {
	assert := newAsserter(t)

	rnd := rand.New(rand.NewSource(4))
	bv := randomVector(rnd, 20000, 0.01)
	opt := &Options{SelectGroup: 2}

	_, s, err := BuildWithOptions(bv, opt)
	assert(err == nil, "build: %s", err)
	assert(s.SparseBlocks() > 0, "exp sparse blocks")

	checkAll(t, bv, opt)
}

// Alternating dense runs and long gaps produce both block kinds
func TestSelectMixed(t *testing.T) {
	assert := newAsserter(t)

	rnd := rand.New(rand.NewSource(5))
	b := NewBitVectorBuilder(50000)
	for i := 0; i < 50000; i++ {
		dense := (i/5000)%2 == 0
		if (dense && rnd.Intn(2) == 0) || (!dense && rnd.Intn(500) == 0) {
			b.Set(i)
		}
	}
	bv := b.Freeze()

	for _, g := range []int{1, 3, 16, 40} {
		opt := &Options{SelectGroup: g}
		_, s, err := BuildWithOptions(bv, opt)
		assert(err == nil, "build: %s", err)
		assert(s.SparseBlocks()+s.DenseBlocks() == s.Blocks(), "block kinds don't add up")

		checkAll(t, bv, opt)
	}
}

// A partial final block, and blocks whose closing bit is the last bit
func TestSelectBlockEdges(t *testing.T) {
	for _, str := range []string{
		"1",
		"01",
		"11111111",
		"000000001",
		"1000000000000000000000000000000000000000000000000000000000000001",
		"10000000000000000000000000000000000000000000000000000000000000001",
		"0101010101010101010101010101010101010101010101010101010101010101010",
	} {
		bv, _ := FromString(str)
		for _, g := range []int{1, 2, 3, 4, 5} {
			checkAll(t, bv, &Options{WordBits: 3, SelectGroup: g})
		}
	}
}

func TestSelectRoundTrip(t *testing.T) {
	assert := newAsserter(t)

	rnd := rand.New(rand.NewSource(6))
	bv := randomVector(rnd, 10000, 0.2)
	r, s := Build(bv)

	prev := -1
	for k := 0; k < s.Ones(); k++ {
		p, err := s.Select1(k)
		assert(err == nil, "select1(%d): %s", k, err)
		assert(p > prev, "select1 not increasing at %d: %d <= %d", k, p, prev)
		prev = p

		ok, _ := bv.Get(p)
		assert(ok, "select1(%d) = %d is not set", k, p)

		x, _ := r.Rank1(p)
		assert(x == k, "rank1(select1(%d)) = %d", k, x)
	}
}

// random 2^16 bit vector with uniform bits; 10000 random queries
func TestSelectStress(t *testing.T) {
	assert := newAsserter(t)

	const n = 1 << 16

	rnd := rand.New(rand.NewSource(1234))
	bv := randomVector(rnd, n, 0.5)
	r, s := Build(bv)
	o := newOracle(bv)
	ones := len(o.pos)

	assert(r.Ones() == ones, "ones: exp %d, saw %d", ones, r.Ones())

	ranks := []int{0, n}
	sels := []int{0, ones - 1}
	for i := 0; i < 10000; i++ {
		ranks = append(ranks, rnd.Intn(n+1))
		sels = append(sels, rnd.Intn(ones))
	}

	for _, i := range ranks {
		x, err := r.Rank1(i)
		assert(err == nil, "rank1(%d): %s", i, err)
		assert(x == o.rank[i], "rank1(%d): exp %d, saw %d", i, o.rank[i], x)
	}

	for _, k := range sels {
		x, err := s.Select1(k)
		assert(err == nil, "select1(%d): %s", k, err)
		assert(x == o.pos[k], "select1(%d): exp %d, saw %d", k, o.pos[k], x)
	}

	// spot check the oracle itself against the linear scans
	for _, k := range sels[:20] {
		assert(naiveSelect1(bv, k) == o.pos[k], "oracle select1(%d) disagrees", k)
	}

	_, err := s.Select1(ones)
	assert(errors.Is(err, ErrNotFound), "select1(ones): %v", err)
	_, err = r.Rank1(n + 1)
	assert(errors.Is(err, ErrOutOfRange), "rank1(n+1): %v", err)
}
