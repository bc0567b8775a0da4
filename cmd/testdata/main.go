package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"pkg.jsn.cam/brc/cmd/testdata/generator"
)

/*generates "key;value" input files for brc*/

var (
	Kind       = flag.String("kind", "measurements", "Generator to use ("+strings.Join(generator.List(), ", ")+")")
	TotalCount = flag.Int64("total_count", 0, "Total number of lines to generate (0 uses the generator default)")
	Stations   = flag.Int("stations", 0, "Number of stations for the measurements generator (0 uses all)")
	OutputPath = flag.String("output", "measurements.txt", "Output file path")
	Seed       = flag.Uint64("seed", 0, "Random seed (0 uses the current time)")
)

// options are the parsed flags
type options struct {
	kind   string
	count  int64
	output string
	seed   uint64
}

func main() {
	flag.Parse()

	if *Stations > 0 {
		generator.SetStations(*Stations)
	}

	seed := *Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	opts := options{kind: *Kind, count: *TotalCount, output: *OutputPath, seed: seed}
	if err := run(os.Stdout, opts); err != nil {
		log.Printf("[TESTDATA] %v", err)
		os.Exit(1)
	}
}

func run(stdout io.Writer, opts options) (err error) {
	gen, err := generator.Get(opts.kind)
	if err != nil {
		return err
	}

	count := opts.count
	if count <= 0 {
		count = gen.DefaultCount()
	}

	log.Printf("[TESTDATA] Generating %d lines: %s", count, gen.Description())

	if err := os.MkdirAll(filepath.Dir(opts.output), 0755); err != nil {
		return err
	}
	file, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", opts.output, cerr)
		}
	}()

	w := bufio.NewWriterSize(file, 1<<20)
	if err := generator.Write(w, gen, count, opts.seed); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", opts.output, err)
	}

	info, err := file.Stat()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s (%s)\n", opts.output, humanize.Bytes(uint64(info.Size())))
	return nil
}
