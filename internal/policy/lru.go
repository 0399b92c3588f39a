package policy

import (
	"container/list"
	"sync"

	"github.com/ryogrid/bufpool/internal/types"
)

// LRU is a doubly-linked list of page ids with a hash index from id to
// list element, following the LRUCache shape used throughout this pack
// (container/list + map) rather than a hand-rolled linked list — the same
// choice the buffer pool's own page cache makes for its MRU/LRU list.
type LRU struct {
	mu    sync.Mutex
	list  *list.List
	index map[types.PageID]*list.Element
}

// NewLRU returns an empty LRU policy.
func NewLRU() *LRU {
	return &LRU{
		list:  list.New(),
		index: make(map[types.PageID]*list.Element),
	}
}

// Bump is O(1): if key is present its node moves to the front; otherwise a
// new node is prepended and indexed. A node already at the front is left
// untouched (early-exit optimization).
func (p *LRU) Bump(key types.PageID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if elem, ok := p.index[key]; ok {
		if p.list.Front() != elem {
			p.list.MoveToFront(elem)
		}
		return
	}
	elem := p.list.PushFront(key)
	p.index[key] = elem
}

// TryEvict removes the tail node: the least-recently-used key.
func (p *LRU) TryEvict() (types.PageID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	back := p.list.Back()
	if back == nil {
		return 0, false
	}
	key := back.Value.(types.PageID)
	p.list.Remove(back)
	delete(p.index, key)
	return key, true
}

// TryEvictKey detaches the indexed node for key, if present.
func (p *LRU) TryEvictKey(key types.PageID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	elem, ok := p.index[key]
	if !ok {
		return false
	}
	p.list.Remove(elem)
	delete(p.index, key)
	return true
}

// Len reports the number of keys currently tracked.
func (p *LRU) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.list.Len()
}
