// cmds.go -- commands abstraction
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
	"sync"
	"time"

	"github.com/opencoff/go-rsdict"
	flag "github.com/opencoff/pflag"
)

type command interface {
	run(args []string, opt *Option) error
}

var cmds = struct {
	sync.Mutex
	m map[string]command
}{
	m: make(map[string]command),
}

func registerCommand(nm string, cmd command) {
	cmds.Lock()
	if _, ok := cmds.m[nm]; ok {
		panic(fmt.Sprintf("%s already registered", nm))
	}
	cmds.m[nm] = cmd
	cmds.Unlock()
}

func runCommand(args []string, o *Option) error {
	nm := args[0]

	cmds.Lock()
	defer cmds.Unlock()
	cmd, ok := cmds.m[nm]
	if !ok {
		return fmt.Errorf("unknown command %s", nm)
	}

	return cmd.run(args, o)
}

type Option struct {
	verbose bool
}

func (o *Option) Printf(s string, v ...interface{}) {
	if o.verbose {
		fmt.Printf(s, v...)
	}
}

// indexFlags adds the index tuning flags to 'fs'
func indexFlags(fs *flag.FlagSet) *rsdict.Options {
	o := rsdict.DefaultOptions()
	fs.IntVarP(&o.WordBits, "word-bits", "w", 0, "Use `W` bit small blocks (0 derives it from the vector length)")
	fs.IntVarP(&o.BlockWords, "block-words", "b", 0, "Use `B` small blocks per big block (0 is 4*W)")
	fs.IntVarP(&o.SelectGroup, "select-group", "S", 0, "Use `S` set bits per select block (0 derives it)")
	return o
}

// openDict maps the vector file 'fn' and builds its index. The caller
// must close the returned VectorFile once done with the Dict.
func openDict(fn string, idx *rsdict.Options, opt *Option) (*rsdict.VectorFile, *rsdict.Dict, error) {
	vf, err := rsdict.OpenVectorFile(fn)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	d, err := rsdict.New(vf.BitVector(), idx)
	if err != nil {
		vf.Close()
		return nil, nil, err
	}

	opt.Printf("%s: index built in %s\n", fn, time.Since(start).Truncate(time.Microsecond))
	return vf, d, nil
}
