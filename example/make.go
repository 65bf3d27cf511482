// make.go -- 'make' command implementation
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
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/opencoff/go-rsdict"
	flag "github.com/opencoff/pflag"
)

type makeCommand struct{}

func init() {
	m := makeCommand{}
	registerCommand("make", &m)
}

func (m *makeCommand) run(args []string, opt *Option) (err error) {
	var n, col int

	fs := flag.NewFlagSet("make", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	fs.IntVarP(&n, "bits", "n", 0, "Make a vector of `N` bits (default: one past the largest position)")
	fs.IntVarP(&col, "column", "c", 0, "Read positions from CSV column `C`")
	fs.Usage = func() {
		fmt.Printf(`Usage: make [options] FILE [INPUT...]

where:
   FILE	    is the name of the output vector file
   INPUT    is one or more optional input files

Each input names the positions of the set bits. The input file(s) must
have a name suffix of one of the following:
   .txt	    one decimal position per line
   .csv	    a comma-separated file; see --column

With no inputs, positions are read from stdin, one per line.

options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("make: %w", err)
	}

	args = fs.Args()
	if len(args) < 1 {
		return fmt.Errorf("make: insufficient args")
	}

	fn := args[0]
	args = args[1:]

	var pos positions
	if len(args) > 0 {
		var k uint64
		for _, f := range args {
			switch {
			case strings.HasSuffix(f, ".txt"):
				k, err = AddTextFile(&pos, f)

			case strings.HasSuffix(f, ".csv"):
				k, err = AddCSVFile(&pos, f, ',', '#', col)

			default:
				return fmt.Errorf("make: don't know how to add %s", f)
			}

			if err != nil {
				return fmt.Errorf("make: can't add %s: %s", f, err)
			}

			opt.Printf("+ %s: %d positions\n", f, k)
		}
	} else {
		var k uint64

		k, err = AddTextStream(&pos, os.Stdin)
		if err != nil {
			return fmt.Errorf("make: can't add text from stdin: %w", err)
		}

		opt.Printf("+ <STDIN>: %d positions\n", k)
	}

	if n == 0 {
		n = pos.limit()
	}

	start := time.Now()
	bv, err := pos.freeze(n)
	if err != nil {
		return fmt.Errorf("make: %w", err)
	}

	if err = rsdict.WriteVectorFile(fn, bv); err != nil {
		return fmt.Errorf("make: can't write %s: %w", fn, err)
	}
	opt.Printf("%d bits, %d ones, %s\n", bv.Len(), bv.Ones(),
		time.Since(start).Truncate(time.Millisecond))
	return nil
}
