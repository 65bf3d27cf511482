// stat.go -- 'stat' command implementation
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

	flag "github.com/opencoff/pflag"
)

type statCommand struct{}

func init() {
	m := statCommand{}
	registerCommand("stat", &m)
}

func (m *statCommand) run(args []string, opt *Option) (err error) {
	fs := flag.NewFlagSet("stat", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	idx := indexFlags(fs)
	fs.Usage = func() {
		fmt.Printf(`Usage: stat [options] FILE

where  'FILE' is the name of a vector file. The rank/select index is built
and the size of each of its parts is printed.

Options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	args = fs.Args()
	if len(args) < 1 {
		return fmt.Errorf("stat: insufficient args")
	}

	fn := args[0]
	vf, d, err := openDict(fn, idx, opt)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	defer vf.Close()

	d.DumpMeta(os.Stdout)
	return nil
}
