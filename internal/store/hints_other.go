//go:build !linux

package store

import "os"

// preallocate is a no-op where the platform offers no fallocate
// equivalent through this package; WritePage still extends the file
// lazily via normal writes.
func preallocate(f *os.File, size int64) error {
	return nil
}

// randomAccessHint is a no-op outside Linux.
func randomAccessHint(f *os.File) error {
	return nil
}
