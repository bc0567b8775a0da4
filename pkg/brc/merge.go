package brc

import (
	"cmp"
	"slices"
)

// Merge combines partial results into a new Result. Inputs are not modified.
//
// The partial statistics of each key are folded in a canonical order, so the
// output does not depend on the order of parts or of keys within them.
func Merge(parts ...Result) Result {
	grouped := make(map[string][]*Stat)
	for _, part := range parts {
		for key, s := range part {
			grouped[key] = append(grouped[key], s)
		}
	}

	merged := make(Result, len(grouped))
	for key, stats := range grouped {
		slices.SortFunc(stats, compareStats)

		acc := stats[0].Clone()
		for _, s := range stats[1:] {
			acc.Merge(s)
		}
		merged[key] = acc
	}

	return merged
}

func compareStats(a, b *Stat) int {
	return cmp.Or(
		cmp.Compare(a.Sum, b.Sum),
		cmp.Compare(a.Count, b.Count),
		cmp.Compare(a.Min, b.Min),
		cmp.Compare(a.Max, b.Max),
		cmp.Compare(a.Carry, b.Carry),
	)
}
