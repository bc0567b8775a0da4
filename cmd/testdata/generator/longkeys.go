package generator

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
)

// LongKeysGenerator writes records whose keys are KeyLen bytes long, so that
// single lines can be longer than a chunk.
type LongKeysGenerator struct {
	KeyLen int
	Keys   int
	rand   *rand.Rand
	keys   []string
}

func (g *LongKeysGenerator) Init(r *rand.Rand) {
	g.rand = r
	if g.Keys <= 0 {
		g.Keys = 3
	}

	g.keys = make([]string, g.Keys)
	for i := range g.keys {
		g.keys[i] = strings.Repeat(string(rune('A'+i%26)), g.KeyLen)
	}
}

func (g *LongKeysGenerator) WriteLine(w io.Writer) error {
	key := g.keys[g.rand.IntN(len(g.keys))]
	_, err := fmt.Fprintf(w, "%s;%.1f\n", key, float64(g.rand.IntN(1999)-999)/10)
	return err
}

func (g *LongKeysGenerator) Description() string {
	return "Few keys with very long names: key;value"
}

func (g *LongKeysGenerator) DefaultCount() int64 {
	return 100
}
