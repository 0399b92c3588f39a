//go:build linux

package store

import (
	"os"

	"golang.org/x/sys/unix"
)

// preallocate requests size bytes for f via fallocate, where supported.
func preallocate(f *os.File, size int64) error {
	return unix.Fallocate(int(f.Fd()), 0, 0, size)
}

// randomAccessHint advises the kernel that f will be accessed randomly,
// discouraging readahead that would be wasted on page-granular access.
func randomAccessHint(f *os.File) error {
	return unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_RANDOM)
}
