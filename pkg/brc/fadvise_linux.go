//go:build linux

package brc

import (
	"os"

	"golang.org/x/sys/unix"
)

// adviseSequential tells the kernel the range will be read front to back.
// The hint is best effort.
func adviseSequential(f *os.File, r ByteRange) {
	_ = unix.Fadvise(int(f.Fd()), r.Start, r.Len(), unix.FADV_SEQUENTIAL)
}
