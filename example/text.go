// text.go -- read set bit positions from text files
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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/opencoff/go-rsdict"
)

// positions collects set bit positions until the vector length is known
type positions struct {
	v   []int
	max int
}

func (p *positions) add(i int) {
	if i >= p.max {
		p.max = i + 1
	}
	p.v = append(p.v, i)
}

// one past the largest position seen
func (p *positions) limit() int {
	return p.max
}

func (p *positions) freeze(n int) (*rsdict.BitVector, error) {
	b := rsdict.NewBitVectorBuilder(n)
	for _, i := range p.v {
		if err := b.Set(i); err != nil {
			return nil, err
		}
	}
	return b.Freeze(), nil
}

// AddTextFile adds positions from text file 'fn', one per line. This
// function just opens the file and calls AddTextStream().
// Returns number of positions added.
func AddTextFile(p *positions, fn string) (uint64, error) {
	fd, err := os.Open(fn)
	if err != nil {
		return 0, err
	}

	defer fd.Close()

	return AddTextStream(p, fd)
}

// AddTextStream adds positions from text stream 'fd', one per line.
// Empty lines and lines starting with '#' are skipped; anything after
// the first field on a line is ignored.
// Returns number of positions added.
func AddTextStream(p *positions, fd io.Reader) (uint64, error) {
	rd := bufio.NewReader(fd)
	sc := bufio.NewScanner(rd)
	ch := make(chan string, 10)
	errch := make(chan error, 1)

	// do I/O asynchronously
	go func(sc *bufio.Scanner, ch chan string) {
		for sc.Scan() {
			s := strings.TrimSpace(sc.Text())
			if len(s) == 0 || s[0] == '#' {
				continue
			}

			if i := strings.IndexAny(s, " \t"); i > 0 {
				s = s[:i]
			}
			ch <- s
		}

		errch <- sc.Err()
		close(ch)
	}(sc, ch)

	return addFromChan(p, ch, errch)
}

// AddCSVFile adds positions from column 'field' of CSV file 'fn'.
// If 'comma' is not 0, the default CSV delimiter is ','.
// If 'comment' is not 0, then lines beginning with that rune are discarded.
// Records without the column are discarded.
// Returns number of positions added.
func AddCSVFile(p *positions, fn string, comma, comment rune, field int) (uint64, error) {
	fd, err := os.Open(fn)
	if err != nil {
		return 0, err
	}

	defer fd.Close()

	return AddCSVStream(p, fd, comma, comment, field)
}

// AddCSVStream adds positions from column 'field' of the CSV stream 'fd'.
// See AddCSVFile() for the other arguments.
func AddCSVStream(p *positions, fd io.Reader, comma, comment rune, field int) (uint64, error) {
	if field < 0 {
		field = 0
	}

	ch := make(chan string, 10)
	errch := make(chan error, 1)
	cr := csv.NewReader(fd)
	cr.Comma = comma
	cr.Comment = comment
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	go func(cr *csv.Reader, ch chan string) {
		var err error
		for {
			var v []string

			v, err = cr.Read()
			if err != nil {
				break
			}

			if len(v) <= field {
				continue
			}

			ch <- strings.TrimSpace(v[field])
		}

		if err == io.EOF {
			err = nil
		}
		errch <- err
		close(ch)
	}(cr, ch)

	return addFromChan(p, ch, errch)
}

// parse positions from the chan. On error the chan is drained so the
// reader goroutine can finish. A read error from 'errch' is reported
// once the chan is closed.
func addFromChan(p *positions, ch chan string, errch chan error) (uint64, error) {
	var n uint64
	var err error

	for s := range ch {
		if err != nil {
			continue
		}

		i, e := strconv.ParseUint(s, 10, 63)
		if e != nil {
			err = fmt.Errorf("invalid position %q: %w", s, e)
			continue
		}

		p.add(int(i))
		n++
	}

	if rerr := <-errch; err == nil && rerr != nil {
		err = fmt.Errorf("read error after %d positions: %w", n, rerr)
	}
	return n, err
}
