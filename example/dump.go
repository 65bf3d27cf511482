// dump.go -- 'dump' command implementation
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
	"fmt"
	"os"

	flag "github.com/opencoff/pflag"
)

type dumpCommand struct{}

func init() {
	m := dumpCommand{}
	registerCommand("dump", &m)
}

func (m *dumpCommand) run(args []string, opt *Option) (err error) {
	var all, meta bool

	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	fs.BoolVarP(&all, "all", "a", false, "Dump every bit as a string of 0 and 1")
	fs.BoolVarP(&meta, "meta", "m", false, "Dump only metadata")
	fs.Usage = func() {
		fmt.Printf(`Usage: dump [options] FILE

where  'FILE' is the name of a vector file. By default the positions of
the set bits are printed, one per line.

Options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	args = fs.Args()
	if len(args) < 1 {
		return fmt.Errorf("dump: insufficient args")
	}

	fn := args[0]
	vf, d, err := openDict(fn, nil, opt)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	defer vf.Close()

	wr := bufio.NewWriter(os.Stdout)
	defer wr.Flush()

	switch {
	case meta:
		fmt.Fprint(wr, vf.Desc())
		d.DumpMeta(wr)

	case all:
		fmt.Fprintf(wr, "%s\n", d.BitVector())

	default:
		for k := 0; k < d.Ones(); k++ {
			i, err := d.Select1(k)
			if err != nil {
				return fmt.Errorf("dump: %w", err)
			}
			fmt.Fprintf(wr, "%d\n", i)
		}
	}
	return nil
}
