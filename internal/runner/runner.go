package runner

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"pkg.jsn.cam/brc/internal/checkpoint"
	"pkg.jsn.cam/brc/pkg/brc"
)

// DefaultWorkers is the worker count the CLI starts from.
const DefaultWorkers = 8

// Config holds run configuration
type Config struct {
	Path    string
	Workers int // requested pool size, clamped to CPUs; must be at least 1
	CPUs    int // available processing units, runtime.NumCPU() when zero

	// Store enables chunk checkpointing when non-nil
	Store checkpoint.Store
	// Reset drops the partials saved for this file before running
	Reset bool

	// OnChunk is called from worker goroutines after each range is done
	OnChunk func(r brc.ByteRange)
}

// Summary is the outcome of a successful run.
type Summary struct {
	RunID       string
	Path        string
	FileSize    int64
	Chunks      int
	Restored    int                    // chunks taken from the checkpoint store
	Fingerprint checkpoint.Fingerprint // empty without a store
	Result      brc.Result
	Elapsed     time.Duration
}

// job is one planned range and its slot in the partials slice
type job struct {
	index int
	rng   brc.ByteRange
}

// Run plans the file, aggregates every range on a fixed pool of workers and
// merges the partial results. The first failure cancels the remaining work
// and is returned without a Summary.
func Run(ctx context.Context, cfg Config) (*Summary, error) {
	start := time.Now()
	runID := uuid.New().String()

	workers := cfg.Workers
	cpus := cfg.CPUs
	if cpus <= 0 {
		cpus = runtime.NumCPU()
	}

	info, err := os.Stat(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", brc.ErrInvalidInput, err)
	}

	ranges, err := brc.PlanFile(cfg.Path, workers, cpus)
	if err != nil {
		return nil, err
	}

	poolSize := min(workers, cpus)
	log.Printf("[RUN:%s] Planned %d chunks over %s (%s) with %d workers",
		runID, len(ranges), cfg.Path, humanize.Bytes(uint64(info.Size())), poolSize)

	var fp checkpoint.Fingerprint
	if cfg.Store != nil {
		fp, err = checkpoint.FingerprintFile(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("fingerprint input: %w", err)
		}
		log.Printf("[RUN:%s] Checkpointing enabled (fingerprint %s)", runID, fp)

		if cfg.Reset {
			if err := cfg.Store.Forget(fp); err != nil {
				return nil, fmt.Errorf("reset checkpoint: %w", err)
			}
			log.Printf("[RUN:%s] Dropped saved partials for %s", runID, cfg.Path)
		}
	}

	p := &pool{
		runID: runID,
		path:  cfg.Path,
		store: cfg.Store,
		fp:    fp,
		onEnd: cfg.OnChunk,
	}

	partials, restored, err := p.run(ctx, ranges, poolSize)
	if err != nil {
		log.Printf("[RUN:%s] Run failed: %v", runID, err)
		return nil, err
	}

	result := brc.Merge(partials...)
	elapsed := time.Since(start)

	log.Printf("[RUN:%s] Merged %d keys from %d records in %v (%d chunks restored)",
		runID, len(result), result.Records(), elapsed, restored)

	return &Summary{
		RunID:       runID,
		Path:        cfg.Path,
		FileSize:    info.Size(),
		Chunks:      len(ranges),
		Restored:    restored,
		Fingerprint: fp,
		Result:      result,
		Elapsed:     elapsed,
	}, nil
}

// pool fans ranges out to a fixed number of goroutines
type pool struct {
	runID string
	path  string
	store checkpoint.Store
	fp    checkpoint.Fingerprint
	onEnd func(brc.ByteRange)
}

func (p *pool) run(ctx context.Context, ranges []brc.ByteRange, size int) ([]brc.Result, int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job)
	partials := make([]brc.Result, len(ranges))
	restored := make([]bool, len(ranges))

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < size; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := range jobs {
				res, fromStore, err := p.process(ctx, worker, j)
				if err != nil {
					fail(fmt.Errorf("chunk %d (%s): %w", j.index, j.rng, err))
					continue
				}
				partials[j.index] = res
				restored[j.index] = fromStore
				if p.onEnd != nil {
					p.onEnd(j.rng)
				}
			}
		}(w)
	}

feed:
	for i, r := range ranges {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{index: i, rng: r}:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, 0, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	n := 0
	for _, ok := range restored {
		if ok {
			n++
		}
	}

	return partials, n, nil
}

// process produces the partial for one range, from the store when possible
func (p *pool) process(ctx context.Context, worker int, j job) (brc.Result, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	if p.store != nil {
		res, ok, err := p.store.Load(p.fp, j.rng)
		if err != nil {
			return nil, false, fmt.Errorf("load checkpoint: %w", err)
		}
		if ok {
			log.Printf("[RUN:%s] Worker %d restored chunk %d (%s) from checkpoint",
				p.runID, worker, j.index, j.rng)
			return res, true, nil
		}
	}

	res, err := brc.Aggregate(ctx, p.path, j.rng)
	if err != nil {
		return nil, false, err
	}

	log.Printf("[RUN:%s] Worker %d aggregated chunk %d (%s, %d keys)",
		p.runID, worker, j.index, humanize.Bytes(uint64(j.rng.Len())), len(res))

	if p.store != nil {
		if err := p.store.Save(p.fp, j.rng, res); err != nil {
			log.Printf("[RUN:%s] Error saving checkpoint for chunk %d: %v", p.runID, j.index, err)
		}
	}

	return res, false, nil
}
