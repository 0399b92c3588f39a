package buffer

import (
	"sync"

	"github.com/ryogrid/bufpool/internal/types"
)

// frameTable is the concurrent page_id -> *Frame map. The spec calls for a
// lock-free concurrent map on the lookup path so contended hits never
// serialize through the policy lock; sync.Map is the standard-library
// instance of that shape and is used unmodified rather than hand-rolling a
// sharded map, since nothing in the pack offers a purpose-built concurrent
// map library for this.
type frameTable struct {
	m sync.Map // types.PageID -> *Frame
}

func newFrameTable() *frameTable {
	return &frameTable{}
}

func (t *frameTable) get(id types.PageID) (*Frame, bool) {
	v, ok := t.m.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*Frame), true
}

// tryAdd installs f under id only if no frame is already present, returning
// the frame that ended up installed (f itself, or the winner of a race)
// and whether f was the winner.
func (t *frameTable) tryAdd(id types.PageID, f *Frame) (*Frame, bool) {
	actual, loaded := t.m.LoadOrStore(id, f)
	return actual.(*Frame), !loaded
}

func (t *frameTable) tryRemove(id types.PageID) (*Frame, bool) {
	v, ok := t.m.LoadAndDelete(id)
	if !ok {
		return nil, false
	}
	return v.(*Frame), true
}

// len reports the current cardinality by walking the map. Only tests use
// it; the manager's overflow check and Stats read its resident counter.
func (t *frameTable) len() int {
	n := 0
	t.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
