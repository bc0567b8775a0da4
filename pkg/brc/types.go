package brc

import "fmt"

// ByteRange is a half-open [Start, End) span of the input file.
type ByteRange struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Len returns the number of bytes covered by the range.
func (r ByteRange) Len() int64 {
	return r.End - r.Start
}

func (r ByteRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Stat is the running min/max/sum/count for one key.
//
// Sum is accumulated with Neumaier compensation; the lost low-order bits
// live in Carry and Total reports the corrected sum.
type Stat struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Sum   float64 `json:"sum"`
	Carry float64 `json:"carry,omitempty"`
	Count int64   `json:"count"`
}

// NewStat creates the statistic for a key's first observation.
func NewStat(v float64) *Stat {
	return &Stat{Min: v, Max: v, Sum: v, Count: 1}
}

// Add folds one observation into s.
func (s *Stat) Add(v float64) {
	if v < s.Min {
		s.Min = v
	}
	if v > s.Max {
		s.Max = v
	}
	s.accumulate(v)
	s.Count++
}

// Merge folds another partial statistic for the same key into s.
func (s *Stat) Merge(o *Stat) {
	if o.Min < s.Min {
		s.Min = o.Min
	}
	if o.Max > s.Max {
		s.Max = o.Max
	}
	s.accumulate(o.Sum)
	s.Carry += o.Carry
	s.Count += o.Count
}

func (s *Stat) accumulate(v float64) {
	t := s.Sum + v
	if abs(s.Sum) >= abs(v) {
		s.Carry += (s.Sum - t) + v
	} else {
		s.Carry += (v - t) + s.Sum
	}
	s.Sum = t
}

// Total returns the compensated sum of all observations.
func (s *Stat) Total() float64 {
	return s.Sum + s.Carry
}

// Mean returns Total divided by Count.
func (s *Stat) Mean() float64 {
	return s.Total() / float64(s.Count)
}

// Clone returns an independent copy of s.
func (s *Stat) Clone() *Stat {
	c := *s
	return &c
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Result maps each key to its statistic. A partial Result covers one chunk.
type Result map[string]*Stat

// Observe folds value into the statistic for key, creating it if needed.
func (r Result) Observe(key string, value float64) {
	if s, ok := r[key]; ok {
		s.Add(value)
		return
	}
	r[key] = NewStat(value)
}

// Records returns the total number of observations in r.
func (r Result) Records() int64 {
	var n int64
	for _, s := range r {
		n += s.Count
	}
	return n
}
