// query.go -- 'query' command implementation
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
	"strconv"

	flag "github.com/opencoff/pflag"
)

type queryCommand struct{}

func init() {
	m := queryCommand{}
	registerCommand("query", &m)
}

func (m *queryCommand) run(args []string, opt *Option) (err error) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	idx := indexFlags(fs)
	fs.Usage = func() {
		fmt.Printf(`Usage: query [options] FILE OP ARG [OP ARG...]

where:
   FILE	    is the name of a vector file
   OP	    is one of:
	      rank I	number of set bits before position I
	      rank0 I	number of clear bits before position I
	      select K	position of the K-th set bit (K starts at 0)
	      get I	value of the bit at position I

Options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	args = fs.Args()
	if len(args) < 3 || len(args)%2 != 1 {
		return fmt.Errorf("query: insufficient args")
	}

	fn := args[0]
	vf, d, err := openDict(fn, idx, opt)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	defer vf.Close()

	for args = args[1:]; len(args) > 0; args = args[2:] {
		op, arg := args[0], args[1]

		i, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("query: %s: invalid argument %q", op, arg)
		}

		var x int
		switch op {
		case "rank":
			x, err = d.Rank1(i)

		case "rank0":
			x, err = d.Rank0(i)

		case "select":
			x, err = d.Select1(i)

		case "get":
			var ok bool
			if ok, err = d.Get(i); ok {
				x = 1
			}

		default:
			return fmt.Errorf("query: unknown op '%s'", op)
		}

		if err != nil {
			return fmt.Errorf("query: %w", err)
		}
		fmt.Printf("%s %d: %d\n", op, i, x)
	}
	return nil
}
