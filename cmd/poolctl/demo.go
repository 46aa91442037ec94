package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/joshuapare/poolkit/internal/mmfile"
	"github.com/joshuapare/poolkit/pool"
	"github.com/spf13/cobra"
)

var (
	demoSize   int
	demoRounds int
	demoSeed   int64
	demoFile   string
)

func init() {
	cmd := newDemoCmd()
	cmd.Flags().IntVar(&demoSize, "size", 1<<20, "Pool region size in bytes")
	cmd.Flags().IntVar(&demoRounds, "rounds", 10000, "Number of alloc/free rounds")
	cmd.Flags().Int64Var(&demoSeed, "seed", 1, "Workload random seed")
	cmd.Flags().StringVar(&demoFile, "file", "", "Back the region with a mapped file instead of memory")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a mixed alloc/free workload and report pool state",
		Long: `The demo command initializes a pool over a fresh region, runs a
randomized alloc/free workload against it, and prints the resulting
accounting, metrics, and free-list state.

Example:
  poolctl demo --size 65536 --rounds 5000
  poolctl demo --file region.pool --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

// demoReport is the JSON shape of a demo run.
type demoReport struct {
	RegionSize int
	Rounds     int
	Peak       int

	Stats struct {
		Total int
		Used  int
		Free  int
	}
	FreeBlocks   int
	LargestFree  int
	Metrics      pool.Metrics
	AllocErrors  int
	LiveAtFinish int
}

func runDemo() error {
	region, cleanup, err := openRegion()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cleanup(); cerr != nil {
			printError("region cleanup: %v\n", cerr)
		}
	}()

	p, err := pool.Init(region)
	if err != nil {
		return fmt.Errorf("init pool: %w", err)
	}
	defer p.Close()

	printVerbose("region: %d bytes, free after init: %d\n", demoSize, p.Stats().Free)

	var report demoReport
	report.RegionSize = demoSize
	report.Rounds = demoRounds

	rng := rand.New(rand.NewSource(demoSeed))
	var live []pool.Ptr
	for i := 0; i < demoRounds; i++ {
		// Bias toward allocation until the pool fills, then churn.
		if len(live) == 0 || rng.Intn(3) != 0 {
			n := 1 << (4 + rng.Intn(7)) // 16..1024 bytes
			ptr, payload, err := p.Alloc(n)
			if err != nil {
				report.AllocErrors++
				continue
			}
			payload[0] = byte(n)
			live = append(live, ptr)
			if used := p.Stats().Used; used > report.Peak {
				report.Peak = used
			}
		} else {
			i := rng.Intn(len(live))
			p.Free(live[i])
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]
		}
	}
	report.LiveAtFinish = len(live)

	st := p.Stats()
	report.Stats.Total = st.Total
	report.Stats.Used = st.Used
	report.Stats.Free = st.Free
	report.FreeBlocks = p.FreeBlockCount()
	report.LargestFree = p.LargestFreeBytes()
	report.Metrics = p.Metrics()

	if jsonOut {
		return printJSON(report)
	}

	printInfo("Pool demo: %d rounds over %d bytes\n\n", report.Rounds, report.RegionSize)
	printInfo("Accounting:\n")
	printInfo("  Total: %d\n", st.Total)
	printInfo("  Used:  %d (peak %d)\n", st.Used, report.Peak)
	printInfo("  Free:  %d in %d block(s), largest %d\n\n",
		st.Free, report.FreeBlocks, report.LargestFree)
	m := report.Metrics
	printInfo("Metrics:\n")
	printInfo("  Allocs: %d (%d splits, %d failed)\n", m.AllocCalls, m.Splits, report.AllocErrors)
	printInfo("  Frees:  %d (%d forward + %d backward merges)\n",
		m.FreeCalls, m.ForwardCoalesces, m.BackwardCoalesces)
	if m.DoubleFrees+m.InvalidFrees+m.CorruptionAborts > 0 {
		printInfo("  Faults: %d double, %d invalid, %d corruption aborts\n",
			m.DoubleFrees, m.InvalidFrees, m.CorruptionAborts)
	}

	if verbose {
		printInfo("\n")
		if err := p.DumpFreeList(os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

// openRegion returns the demo backing region: a mapped file when --file is
// set, an anonymous mapping otherwise. Either way the region starts at a page
// boundary and satisfies the pool's alignment requirement.
func openRegion() ([]byte, func() error, error) {
	if demoFile != "" {
		printVerbose("mapping region file: %s\n", demoFile)
		return mmfile.Map(demoFile, int64(demoSize))
	}
	return mmfile.Anonymous(demoSize)
}
