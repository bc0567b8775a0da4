// Package checkpoint keeps completed chunk results so a repeated or
// interrupted run over the same file can skip chunks it already scanned.
package checkpoint

import (
	"errors"
	"fmt"

	"pkg.jsn.cam/brc/pkg/brc"
)

var (
	ErrIncompatibleStore = errors.New("incompatible checkpoint store")
	ErrStoreClosed       = errors.New("checkpoint store closed")
)

// Store persists partial results keyed by input fingerprint and byte range.
// Implementations must be safe for concurrent use.
type Store interface {
	// Load returns the saved partial for r, or false if there is none.
	Load(fp Fingerprint, r brc.ByteRange) (brc.Result, bool, error)
	Save(fp Fingerprint, r brc.ByteRange, res brc.Result) error
	// Forget drops every partial saved for fp.
	Forget(fp Fingerprint) error
	Close() error
}

func bucketName(fp Fingerprint) []byte {
	return []byte("file_" + string(fp))
}

func rangeKey(r brc.ByteRange) []byte {
	return []byte(fmt.Sprintf("%d-%d", r.Start, r.End))
}
