// verify.go -- 'verify' command implementation
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
	"math/rand"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	flag "github.com/opencoff/pflag"
)

type verifyCommand struct{}

func init() {
	m := verifyCommand{}
	registerCommand("verify", &m)
}

func (m *verifyCommand) run(args []string, opt *Option) (err error) {
	var nq int
	var seed int64

	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	idx := indexFlags(fs)
	fs.IntVarP(&nq, "queries", "q", 10000, "Run `Q` random rank and select queries")
	fs.Int64VarP(&seed, "seed", "s", 1, "Use `S` to seed the query generator")
	fs.Usage = func() {
		fmt.Printf(`Usage: verify [options] FILE

where  'FILE' is the name of a vector file. Random rank and select
queries are answered by the index and by a linear scan of the bits;
any disagreement is an error.

Options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	args = fs.Args()
	if len(args) < 1 {
		return fmt.Errorf("verify: insufficient args")
	}

	fn := args[0]
	vf, d, err := openDict(fn, idx, opt)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	defer vf.Close()

	rnd := rand.New(rand.NewSource(seed))
	n := d.Len()
	ones := d.Ones()

	// always include the ends
	ranks := []int{0, n}
	var sels []int
	if ones > 0 {
		sels = append(sels, 0, ones-1)
	}
	for i := 0; i < nq; i++ {
		ranks = append(ranks, rnd.Intn(n+1))
		if ones > 0 {
			sels = append(sels, rnd.Intn(ones))
		}
	}

	bv := d.BitVector()
	exp := make([]int, len(ranks))
	naive := timed(func() {
		for j, i := range ranks {
			exp[j] = naiveRank1(bv, i)
		}
	})

	saw := make([]int, len(ranks))
	fast := timed(func() {
		for j, i := range ranks {
			saw[j], _ = d.Rank1(i)
		}
	})

	for j, i := range ranks {
		if exp[j] != saw[j] {
			return fmt.Errorf("verify: rank1(%d): exp %d, saw %d", i, exp[j], saw[j])
		}
	}
	report("rank1", len(ranks), naive, fast)

	exp = make([]int, len(sels))
	naive = timed(func() {
		for j, k := range sels {
			exp[j] = naiveSelect1(bv, k)
		}
	})

	saw = make([]int, len(sels))
	fast = timed(func() {
		for j, k := range sels {
			saw[j], _ = d.Select1(k)
		}
	})

	for j, k := range sels {
		if exp[j] != saw[j] {
			return fmt.Errorf("verify: select1(%d): exp %d, saw %d", k, exp[j], saw[j])
		}
	}
	report("select1", len(sels), naive, fast)

	opt.Printf("%s: %d bits, %d ones; index %s\n", fn, n, ones, humanize.IBytes(d.Size()/8))
	return nil
}

func timed(fp func()) time.Duration {
	start := time.Now()
	fp()
	return time.Since(start)
}

func report(op string, n int, naive, fast time.Duration) {
	if n == 0 {
		fmt.Printf("%-8s no queries\n", op)
		return
	}

	per := func(d time.Duration) time.Duration {
		return d / time.Duration(n)
	}
	fmt.Printf("%-8s %d queries: naive %s/query, indexed %s/query\n", op, n, per(naive), per(fast))
}
