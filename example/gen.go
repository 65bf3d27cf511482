// gen.go -- 'gen' command implementation
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
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/opencoff/go-fasthash"
	"github.com/opencoff/go-rsdict"
	flag "github.com/opencoff/pflag"
)

type genCommand struct{}

func init() {
	m := genCommand{}
	registerCommand("gen", &m)
}

func (m *genCommand) run(args []string, opt *Option) (err error) {
	var n int
	var p float64
	var seed uint64

	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	fs.IntVarP(&n, "bits", "n", 1<<16, "Make a vector of `N` bits")
	fs.Float64VarP(&p, "density", "p", 0.5, "Set each bit with probability `P`")
	fs.Uint64VarP(&seed, "seed", "s", 0xdeadbeefbaadf00d, "Use `S` as the generator seed")
	fs.Usage = func() {
		fmt.Printf(`Usage: gen [options] FILE

where  'FILE' is the name of the output vector file. The same seed, length
and density always produce the same vector.

Options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("gen: %w", err)
	}

	args = fs.Args()
	if len(args) < 1 {
		return fmt.Errorf("gen: insufficient args")
	}

	if n < 0 {
		return fmt.Errorf("gen: invalid length %d", n)
	}
	if p < 0 || p > 1 {
		return fmt.Errorf("gen: density %f not in [0, 1]", p)
	}

	fn := args[0]
	start := time.Now()
	bv := generate(n, p, seed)
	if err = rsdict.WriteVectorFile(fn, bv); err != nil {
		return fmt.Errorf("gen: %w", err)
	}

	opt.Printf("%s: %d bits, %d ones, %s\n", fn, bv.Len(), bv.Ones(),
		time.Since(start).Truncate(time.Millisecond))
	return nil
}

// generate sets bit i when the hash of i under 'seed' falls below the
// fraction 'p' of the hash space.
func generate(n int, p float64, seed uint64) *rsdict.BitVector {
	b := rsdict.NewBitVectorBuilder(n)

	var thresh uint64
	all := p >= 1.0
	if !all {
		thresh = uint64(math.Ldexp(p, 64))
	}

	var key [8]byte
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint64(key[:], uint64(i))
		if all || fasthash.Hash64(seed, key[:]) < thresh {
			b.Set(i)
		}
	}
	return b.Freeze()
}
