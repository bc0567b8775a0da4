package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/schollz/progressbar/v3"

	"pkg.jsn.cam/brc/internal/checkpoint"
	"pkg.jsn.cam/brc/internal/runner"
	"pkg.jsn.cam/brc/pkg/brc"
)

var (
	path     = flag.String("file", "measurements.txt", "Path to the input file")
	workers  = flag.Int("workers", runner.DefaultWorkers, "Number of parallel workers (clamped to CPU count)")
	checkpt  = flag.String("checkpoint", "", "Path to a bbolt checkpoint database (empty disables checkpointing)")
	reset    = flag.Bool("reset", false, "Drop saved checkpoint partials for the input before running")
	progress = flag.Bool("progress", false, "Show a progress bar on stderr")
	quiet    = flag.Bool("quiet", false, "Suppress log output")
)

// Exit codes
const (
	exitOK        = 0
	exitFailure   = 1
	exitInvalid   = 2
	exitMalformed = 3
)

func main() {
	flag.Parse()

	if *quiet {
		log.SetOutput(io.Discard)
	}

	os.Exit(run(os.Stdout))
}

func run(stdout io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := runner.Config{
		Path:    *path,
		Workers: *workers,
	}

	if *checkpt != "" {
		store, err := checkpoint.OpenBolt(*checkpt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitFailure
		}
		defer store.Close()
		cfg.Store = store
		cfg.Reset = *reset
	}

	var bar *progressbar.ProgressBar
	if *progress {
		if info, err := os.Stat(*path); err == nil {
			bar = progressbar.NewOptions64(info.Size(),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("aggregating"),
				progressbar.OptionShowBytes(true),
				progressbar.OptionClearOnFinish(),
			)
			cfg.OnChunk = func(r brc.ByteRange) {
				_ = bar.Add64(r.Len())
			}
		}
	}

	sum, err := runner.Run(ctx, cfg)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCode(err)
	}

	fmt.Fprintf(stdout, "Time taken: %.1fs\n", sum.Elapsed.Seconds())
	if err := brc.WriteReport(stdout, sum.Result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}

	return exitOK
}

// exitCode maps a run error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, brc.ErrInvalidInput):
		return exitInvalid
	case errors.Is(err, brc.ErrMalformedRecord):
		return exitMalformed
	default:
		return exitFailure
	}
}
