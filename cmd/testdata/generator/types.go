package generator

import (
	"io"
	"math/rand/v2"
)

// Generator produces "key;value" test data
type Generator interface {
	// Init initializes the generator with a per-instance random source
	// This eliminates lock contention on the global rand source
	Init(r *rand.Rand)

	// WriteLine writes a single record, newline included, to the writer
	WriteLine(w io.Writer) error

	// Description returns a human-readable description of the data format
	Description() string

	// DefaultCount returns the suggested default number of lines to generate
	DefaultCount() int64
}

// Write initializes g with a PCG source seeded from seed and writes n lines.
func Write(w io.Writer, g Generator, n int64, seed uint64) error {
	g.Init(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
	for i := int64(0); i < n; i++ {
		if err := g.WriteLine(w); err != nil {
			return err
		}
	}
	return nil
}
