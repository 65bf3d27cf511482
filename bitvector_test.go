// bitvector_test.go -- test suite for bitvector
//
// (c) Sudhi Herle 2018
//
// License GPLv2
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
	"runtime"
	"sync"
	"testing"
)

func TestBV(t *testing.T) {
	assert := newAsserter(t)

	b := NewBitVectorBuilder(100)
	for i := 0; i < 100; i++ {
		if 1 == (i & 1) {
			assert(b.Set(i) == nil, "can't set %d", i)
		}
	}

	bv := b.Freeze()
	assert(bv.Len() == 100, "size mismatch; exp 100, saw %d", bv.Len())
	assert(bv.Words() == 2, "words mismatch; exp 2, saw %d", bv.Words())
	assert(bv.Ones() == 50, "ones mismatch; exp 50, saw %d", bv.Ones())

	for i := 0; i < bv.Len(); i++ {
		ok, err := bv.Get(i)
		assert(err == nil, "get %d: %s", i, err)
		if 1 == (i & 1) {
			assert(ok, "%d not set", i)
		} else {
			assert(!ok, "%d is set", i)
		}
	}

	_, err := bv.Get(100)
	assert(errors.Is(err, ErrOutOfRange), "get 100: exp out of range, saw %v", err)
	_, err = bv.Get(-1)
	assert(errors.Is(err, ErrOutOfRange), "get -1: exp out of range, saw %v", err)

	err = b.Set(1)
	assert(err != nil, "set after freeze succeeded")

	bv2 := b.Freeze()
	assert(bv2 == bv, "second freeze returned a different bitvector")
	assert(bv2.Ones() == 50, "second freeze: ones: exp 50, saw %d", bv2.Ones())

	e := NewBitVectorBuilder(0)
	z := e.Freeze()
	assert(e.Freeze() == z, "empty builder: second freeze returned a different bitvector")
	assert(e.Set(0) != nil, "set after freeze succeeded on empty builder")
}

func TestBVString(t *testing.T) {
	assert := newAsserter(t)

	bv, err := FromString("1011_0100")
	assert(err == nil, "parse failed: %s", err)
	assert(bv.Len() == 8, "len: exp 8, saw %d", bv.Len())
	assert(bv.Ones() == 4, "ones: exp 4, saw %d", bv.Ones())
	assert(bv.String() == "10110100", "string: saw %s", bv.String())

	exp := []bool{true, false, true, true, false, true, false, false}
	for i, e := range exp {
		ok, _ := bv.Get(i)
		assert(ok == e, "bit %d: exp %v, saw %v", i, e, ok)
	}

	_, err = FromString("10x1")
	assert(err != nil, "bad string parsed")

	bv, err = FromString("")
	assert(err == nil, "empty string: %s", err)
	assert(bv.Len() == 0, "empty len %d", bv.Len())
}

func TestBVNew(t *testing.T) {
	assert := newAsserter(t)

	// trailing garbage past n must be cleared
	bv, err := NewBitVector([]uint64{^uint64(0), ^uint64(0)}, 70)
	assert(err == nil, "new failed: %s", err)
	assert(bv.Ones() == 70, "ones: exp 70, saw %d", bv.Ones())

	w, err := bv.WordAt(64, 16)
	assert(err == nil, "wordat: %s", err)
	assert(w == 0x3f, "padded word: exp %#x, saw %#x", 0x3f, w)

	_, err = NewBitVector([]uint64{0}, 65)
	assert(errors.Is(err, ErrOutOfRange), "short words accepted: %v", err)

	_, err = NewBitVector(nil, -1)
	assert(errors.Is(err, ErrOutOfRange), "negative length accepted: %v", err)
}

func TestBVWordAt(t *testing.T) {
	assert := newAsserter(t)

	rnd := rand.New(rand.NewSource(42))
	bv := randomVector(rnd, 333, 0.5)
	n := bv.Len()

	for i := 0; i <= n; i++ {
		for _, width := range []int{0, 1, 7, 8, 16, 63, 64} {
			w, err := bv.WordAt(i, width)
			assert(err == nil, "wordat(%d, %d): %s", i, width, err)

			var exp uint64
			for j := 0; j < width && i+j < n; j++ {
				if ok, _ := bv.Get(i + j); ok {
					exp |= uint64(1) << j
				}
			}
			assert(w == exp, "wordat(%d, %d): exp %#x, saw %#x", i, width, exp, w)
		}
	}

	_, err := bv.WordAt(n+1, 8)
	assert(errors.Is(err, ErrOutOfRange), "wordat past end: %v", err)
	_, err = bv.WordAt(0, 65)
	assert(errors.Is(err, ErrOutOfRange), "wordat wide: %v", err)
}

// Concurrent readers of a frozen bitvector
func TestBVConcurrent(t *testing.T) {
	assert := newAsserter(t)
	ncpu := runtime.NumCPU() * 2

	rnd := rand.New(rand.NewSource(7))
	bv := randomVector(rnd, 1000, 0.3)
	str := bv.String()

	var w sync.WaitGroup
	errs := make([]int, ncpu)

	w.Add(ncpu)
	for i := 0; i < ncpu; i++ {
		go func(i int) {
			defer w.Done()
			for j := 0; j < bv.Len(); j++ {
				ok, _ := bv.Get(j)
				if ok != (str[j] == '1') {
					errs[i]++
				}
			}
		}(i)
	}
	w.Wait()

	for i, e := range errs {
		assert(e == 0, "reader %d saw %d mismatches", i, e)
	}
}
