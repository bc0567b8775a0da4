package brc

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two failure classes of a run
var (
	// Missing or unreadable file, empty file, bad worker count
	ErrInvalidInput = errors.New("invalid input")

	// A line that is not exactly "<key>;<number>"
	ErrMalformedRecord = errors.New("malformed record")
)

// RecordError reports the offending line of a malformed record.
type RecordError struct {
	Offset int64  // byte offset of the start of the line
	Line   string // raw line without its terminator
	Err    error  // underlying parse error, may be nil
}

func (e *RecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed record at byte %d %q: %v", e.Offset, e.Line, e.Err)
	}
	return fmt.Sprintf("malformed record at byte %d %q", e.Offset, e.Line)
}

// Unwrap lets errors.Is match both ErrMalformedRecord and the parse cause.
func (e *RecordError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedRecord}
	}
	return []error{ErrMalformedRecord, e.Err}
}
