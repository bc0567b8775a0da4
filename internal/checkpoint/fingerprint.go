package checkpoint

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/xxh3"
)

// sampleSize is how much of the head and tail of the file is hashed
const sampleSize = 64 << 10

// Fingerprint identifies one version of an input file.
type Fingerprint string

// FingerprintFile hashes the size, modification time and the first and last
// 64 KiB of the file at path. Bytes between the head and tail are not read,
// so an edit there that keeps size and mtime yields the same fingerprint.
func FingerprintFile(path string) (Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	size := info.Size()

	h := xxh3.New()

	var meta []byte
	meta = binary.LittleEndian.AppendUint64(meta, uint64(size))
	meta = binary.LittleEndian.AppendUint64(meta, uint64(info.ModTime().UnixNano()))
	h.Write(meta)

	if _, err := io.CopyN(h, f, min(size, sampleSize)); err != nil {
		return "", fmt.Errorf("hash head of %s: %w", path, err)
	}

	if size > sampleSize {
		tail := min(size-sampleSize, sampleSize)
		if _, err := f.Seek(-tail, io.SeekEnd); err != nil {
			return "", fmt.Errorf("seek tail of %s: %w", path, err)
		}
		if _, err := io.CopyN(h, f, tail); err != nil {
			return "", fmt.Errorf("hash tail of %s: %w", path, err)
		}
	}

	sum := h.Sum128().Bytes()
	return Fingerprint(hex.EncodeToString(sum[:])), nil
}
