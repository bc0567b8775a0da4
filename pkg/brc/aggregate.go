package brc

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

const (
	// Delimiter separates the key from the value on each line.
	Delimiter = ';'

	readBufSize = 1 << 20

	// how many lines are scanned between context checks
	checkEvery = 1 << 14
)

// Aggregate scans r in the file at path and folds every record into a new
// Result. It opens its own handle so concurrent calls share nothing.
//
// Lines are read while the consumed offset is below r.End; a line that
// starts before End is consumed whole. Any line that is not exactly
// "<key>;<finite float>" fails the whole chunk with a *RecordError.
func Aggregate(ctx context.Context, path string, r ByteRange) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrInvalidInput, path, err)
	}
	defer f.Close()

	adviseSequential(f, r)

	if _, err := f.Seek(r.Start, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to %d: %w", r.Start, err)
	}

	lr := lineReader{br: bufio.NewReaderSize(f, readBufSize)}
	result := make(Result)
	offset := r.Start

	for lines := 1; offset < r.End; lines++ {
		if lines%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line, consumed, err := lr.next()
		if consumed == 0 && errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read at byte %d: %w", offset, err)
		}

		key, value, perr := parseRecord(line)
		if perr != nil {
			return nil, &RecordError{Offset: offset, Line: string(line), Err: perr}
		}
		result.Observe(key, value)

		offset += int64(consumed)
		if errors.Is(err, io.EOF) {
			break
		}
	}

	return result, nil
}

var (
	errFieldCount = errors.New("want exactly two fields")
	errNotFinite  = errors.New("value is not finite")
)

// parseRecord splits line into key and value.
func parseRecord(line []byte) (string, float64, error) {
	i := bytes.IndexByte(line, Delimiter)
	if i < 0 || bytes.IndexByte(line[i+1:], Delimiter) >= 0 {
		return "", 0, errFieldCount
	}

	v, err := strconv.ParseFloat(string(line[i+1:]), 64)
	if err != nil {
		return "", 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "", 0, errNotFinite
	}

	return string(line[:i]), v, nil
}

// lineReader yields lines of any length from a bufio.Reader.
type lineReader struct {
	br      *bufio.Reader
	scratch []byte
}

// next returns the line without its '\n' and the number of bytes consumed,
// terminator included. The returned slice is only valid until the next call.
// A final line without a terminator is returned together with io.EOF.
func (l *lineReader) next() ([]byte, int, error) {
	l.scratch = l.scratch[:0]
	for {
		frag, err := l.br.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			l.scratch = append(l.scratch, frag...)
			continue
		}

		line := frag
		if len(l.scratch) > 0 {
			l.scratch = append(l.scratch, frag...)
			line = l.scratch
		}
		consumed := len(line)

		if err != nil {
			return line, consumed, err
		}
		return line[:len(line)-1], consumed, nil
	}
}
