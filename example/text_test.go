// text_test.go -- test suite for reading set bit positions
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
	"bufio"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"
)

func TestTextStream(t *testing.T) {
	assert := newAsserter(t)

	in := `# positions
3
0 first bit

17
3
`
	var p positions
	n, err := AddTextStream(&p, strings.NewReader(in))
	assert(err == nil, "text: %s", err)
	assert(n == 4, "text: exp 4 positions, saw %d", n)
	assert(p.limit() == 18, "limit: exp 18, saw %d", p.limit())

	bv, err := p.freeze(p.limit())
	assert(err == nil, "freeze: %s", err)
	assert(bv.Ones() == 3, "ones: exp 3, saw %d", bv.Ones())

	_, err = p.freeze(10)
	assert(err != nil, "position 17 fit in 10 bits")
}

func TestTextStreamErrors(t *testing.T) {
	assert := newAsserter(t)

	var p positions
	_, err := AddTextStream(&p, strings.NewReader("1\nabc\n2\n"))
	assert(err != nil, "bad position accepted")

	// a line longer than the scanner buffer must not end the input quietly
	long := "5\n" + strings.Repeat("1", bufio.MaxScanTokenSize+1) + "\n7\n"
	p = positions{}
	_, err = AddTextStream(&p, strings.NewReader(long))
	assert(errors.Is(err, bufio.ErrTooLong), "long line: exp too long, saw %v", err)
}

func TestCSVStream(t *testing.T) {
	assert := newAsserter(t)

	// the header is not a number
	in := "name,pos\n# skipped\nx,4\ny,9\nshort\n"
	var p positions
	_, err := AddCSVStream(&p, strings.NewReader(in), ',', '#', 1)
	assert(err != nil, "csv header accepted as a position")

	p = positions{}
	n, err := AddCSVStream(&p, strings.NewReader("x,4\ny,9\nshort\n"), ',', '#', 1)
	assert(err == nil, "csv: %s", err)
	assert(n == 2, "csv: exp 2 positions, saw %d", n)
	assert(p.limit() == 10, "limit: exp 10, saw %d", p.limit())

	p = positions{}
	_, err = AddCSVStream(&p, strings.NewReader("x,\"4\n"), ',', '#', 1)
	assert(err != nil, "unterminated quote accepted")
}

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
