package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rawbytedev/memlink"
)

type benchConfiguration struct {
	Base       *baseConfiguration
	Size       string
	Shift      int
	Iterations int
	Workers    int
	CPUProfile string
	MemProfile string
}

type benchResult struct {
	Ops     int64
	Moved   uint64
	Elapsed time.Duration
}

func newBenchCmd(base *baseConfiguration) *cobra.Command {
	config := &benchConfiguration{Base: base}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run an insert/erase loop over private buffers and report throughput",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.Context(), config)
		},
	}
	cmd.Flags().StringVar(&config.Size, "size", "64KiB", "buffer size per worker")
	cmd.Flags().IntVar(&config.Shift, "shift", 16, "bytes inserted and erased per operation")
	cmd.Flags().IntVar(&config.Iterations, "iterations", 10000, "insert/erase pairs per worker")
	cmd.Flags().IntVar(&config.Workers, "workers", runtime.GOMAXPROCS(0), "concurrent workers")
	cmd.Flags().StringVar(&config.CPUProfile, "cpu-profile", "", "write a CPU profile to this file")
	cmd.Flags().StringVar(&config.MemProfile, "mem-profile", "", "write a heap profile to this file")
	return cmd
}

func runBench(ctx context.Context, config *benchConfiguration) error {
	log := config.Base.log
	size, err := humanize.ParseBytes(config.Size)
	if err != nil {
		return fmt.Errorf("invalid --size: %w", err)
	}
	if config.Workers < 1 || config.Iterations < 0 || config.Shift < 0 || uint64(config.Shift) > size {
		return fmt.Errorf("invalid bench parameters: workers=%d iterations=%d shift=%d size=%d",
			config.Workers, config.Iterations, config.Shift, size)
	}

	if config.CPUProfile != "" {
		f, err := os.Create(config.CPUProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	res, err := bench(ctx, int(size), config.Shift, config.Iterations, config.Workers)
	if err != nil {
		return err
	}

	if config.MemProfile != "" {
		f, err := os.Create(config.MemProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return err
		}
	}

	var perSec uint64
	if res.Elapsed > 0 {
		perSec = uint64(float64(res.Moved) / res.Elapsed.Seconds())
	}
	log.Info().
		Str("size", humanize.IBytes(size)).
		Int("workers", config.Workers).
		Str("ops", humanize.Comma(res.Ops)).
		Str("moved", humanize.IBytes(res.Moved)).
		Dur("elapsed", res.Elapsed).
		Str("throughput", humanize.IBytes(perSec)+"/s").
		Msg("bench done")
	return nil
}

// bench gives each worker its own block and alternates Insert and Erase
// at a walking offset. Every op rotates the tail from the offset to the end.
func bench(ctx context.Context, size, shift, iterations, workers int) (benchResult, error) {
	start := time.Now()
	moved := make([]uint64, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			blk, err := memlink.NewBlock(size)
			if err != nil {
				return err
			}
			defer blk.Release()
			m := blk.Link()
			span := size - shift + 1
			for i := 0; i < iterations; i++ {
				if i&1023 == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				off := (i * 61) % span
				if _, err := m.Insert(off, shift); err != nil {
					return err
				}
				if _, err := m.Erase(off, shift); err != nil {
					return err
				}
				moved[w] += 2 * uint64(size-off)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return benchResult{}, err
	}
	res := benchResult{Ops: 2 * int64(iterations) * int64(workers), Elapsed: time.Since(start)}
	for _, n := range moved {
		res.Moved += n
	}
	return res, nil
}
