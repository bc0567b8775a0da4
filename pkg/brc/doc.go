// Package brc computes per-key min/mean/max over "key;value" files.
//
// A file is split into line-aligned byte ranges (Plan), each range is reduced
// independently (Aggregate), and the partial results are combined (Merge)
// before being rendered (Format).
package brc
