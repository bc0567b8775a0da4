package brc

import (
	"fmt"
	"runtime"

	"golang.org/x/exp/mmap"
)

// ByteSource gives random access to the bytes of the input file.
// *mmap.ReaderAt satisfies it.
type ByteSource interface {
	Len() int
	At(i int) byte
}

// PlanFile maps the file at path and splits it into line-aligned ranges
// for at most workerCount workers. cpus <= 0 means runtime.NumCPU().
func PlanFile(path string, workerCount, cpus int) ([]ByteRange, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrInvalidInput, path, err)
	}
	defer r.Close()

	if cpus <= 0 {
		cpus = runtime.NumCPU()
	}

	return Plan(r, workerCount, cpus)
}

// Plan splits src into contiguous, line-aligned ranges covering [0, Len).
//
// workerCount is clamped to cpus. The target chunk size is Len/workerCount;
// each proposed end is walked back to the nearest line boundary, and when
// that collapses the range the end jumps forward past the next newline
// instead. The number of ranges can therefore differ from workerCount.
func Plan(src ByteSource, workerCount, cpus int) ([]ByteRange, error) {
	if workerCount < 1 {
		return nil, fmt.Errorf("%w: worker count %d", ErrInvalidInput, workerCount)
	}
	size := src.Len()
	if size == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	workerCount = min(workerCount, max(cpus, 1))
	target := size / workerCount

	ranges := make([]ByteRange, 0, workerCount+1)
	start := 0
	for start < size {
		proposed := min(size, start+target)

		end := proposed
		for !isBoundary(src, end) {
			end--
		}

		if end == start {
			end = nextLine(src, proposed)
		}

		ranges = append(ranges, ByteRange{Start: int64(start), End: int64(end)})
		start = end
	}

	return ranges, nil
}

// isBoundary reports whether pos is 0, end of file, or right after a newline.
func isBoundary(src ByteSource, pos int) bool {
	if pos == 0 || pos == src.Len() {
		return true
	}
	return src.At(pos-1) == '\n'
}

// nextLine returns the position just past the first newline at or after pos,
// or the end of the file if there is none.
func nextLine(src ByteSource, pos int) int {
	size := src.Len()
	for i := pos; i < size; i++ {
		if src.At(i) == '\n' {
			return i + 1
		}
	}
	return size
}
