package store

import (
	"os"

	"github.com/ncw/directio"
)

// openBacking opens the backing file read/write, creating it if needed.
// When useDirectIO is set it opens through ncw/directio, which arranges
// O_DIRECT (or the platform's closest equivalent) itself; direct I/O
// requires aligned buffers, so callers reading/writing through a direct
// store must size their page buffers with directio.AlignedBlock.
func openBacking(path string, useDirectIO bool) (*os.File, error) {
	if useDirectIO {
		f, err := directio.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
		if err == nil {
			return f, nil
		}
		// Direct I/O unsupported on this filesystem/platform: fall back to
		// a buffered open rather than failing the whole store.
	}
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
}
