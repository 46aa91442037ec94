package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/poolkit/internal/mmfile"
	"github.com/joshuapare/poolkit/pool"
	"github.com/spf13/cobra"
)

var (
	fragSize  int
	fragBlock int
)

func init() {
	cmd := newFragCmd()
	cmd.Flags().IntVar(&fragSize, "size", 4096, "Pool region size in bytes")
	cmd.Flags().IntVar(&fragBlock, "block", 64, "Allocation size used to carve the region")
	rootCmd.AddCommand(cmd)
}

func newFragCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "frag",
		Short: "Demonstrate free-space fragmentation",
		Long: `The frag command fills a pool with equal-size allocations, frees
every other one, and reports how the scattered free space compares to the
largest single block a request could actually be served from.

Example:
  poolctl frag --size 4096 --block 64`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrag()
		},
	}
}

func runFrag() error {
	region, cleanup, err := mmfile.Anonymous(fragSize)
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

	var ptrs []pool.Ptr
	for {
		ptr, _, err := p.Alloc(fragBlock)
		if err != nil {
			break
		}
		ptrs = append(ptrs, ptr)
	}
	printVerbose("carved %d blocks of %d bytes\n", len(ptrs), fragBlock)

	for i := 0; i < len(ptrs); i += 2 {
		p.Free(ptrs[i])
	}

	total := p.TotalFreeBytes()
	largest := p.LargestFreeBytes()
	printInfo("Fragmentation after freeing every other block:\n")
	printInfo("  Free space: %d bytes in %d block(s)\n", total, p.FreeBlockCount())
	printInfo("  Largest single block: %d bytes\n", largest)

	// A request between the largest block and the total shows the effect.
	want := largest + 1
	if want <= total {
		_, _, err := p.Alloc(want)
		printInfo("  Alloc(%d) with %d bytes nominally free: %v\n", want, total, err)
	}

	if verbose {
		printInfo("\n")
		return p.DumpFreeList(os.Stdout)
	}
	return nil
}
