package buffer

import (
	"sync/atomic"

	"github.com/ryogrid/bufpool/internal/latch"
	"github.com/ryogrid/bufpool/internal/types"
)

// Frame is the unit of residence: one per resident page, owning its
// rented buffer exclusively, a reader/writer latch, and a dirty flag.
type Frame struct {
	PageID types.PageID
	buf    []byte
	dirty  atomic.Bool
	Latch  *latch.Latch
}

func newFrame(id types.PageID, buf []byte) *Frame {
	return &Frame{PageID: id, buf: buf, Latch: latch.New()}
}

// Buffer returns the frame's exclusively-owned page buffer. Valid only
// while the frame remains resident; callers must not retain it past
// eviction (I3).
func (f *Frame) Buffer() []byte { return f.buf }

// Dirty reports the current dirty flag.
func (f *Frame) Dirty() bool { return f.dirty.Load() }

// setDirty sets the dirty flag. Callers must already hold (or be acting
// on behalf of a caller holding) the write latch, per I4; the manager
// enforces that precondition before calling this.
func (f *Frame) setDirty() { f.dirty.Store(true) }

// clearDirty clears the dirty flag after a successful write-back.
func (f *Frame) clearDirty() { f.dirty.Store(false) }
