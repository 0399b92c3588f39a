package policy

import (
	"sync"

	"github.com/ryogrid/bufpool/internal/types"
)

// clockNode is one slot in the CLOCK ring: a key, its reference bit, and
// the next node in ring order.
type clockNode struct {
	key types.PageID
	ref bool
	next *clockNode
}

// Clock implements the CLOCK (second-chance) policy: a singly-linked
// circular list of nodes each carrying a reference bit, with a hand
// pointing into the ring. This mirrors the pin/ClockBit sweep in the
// B-link tree buffer manager's PinLatch eviction path — clearing the bit
// and advancing on a first pass, evicting on the second — generalized from
// that manager's fixed slot array into a ring of only the keys currently
// present, since this policy tracks an arbitrary id space rather than a
// preallocated slot table.
type Clock struct {
	mu    sync.Mutex
	index map[types.PageID]*clockNode
	hand  *clockNode // next node the sweep will examine
}

// NewClock returns an empty CLOCK policy.
func NewClock() *Clock {
	return &Clock{index: make(map[types.PageID]*clockNode)}
}

// Bump sets the reference bit if key is present, or inserts a new node
// (reference bit true) immediately after the hand, so the sweep reaches it
// right after the node under the hand and its set bit spares it on that
// first visit.
func (p *Clock) Bump(key types.PageID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n, ok := p.index[key]; ok {
		n.ref = true
		return
	}

	n := &clockNode{key: key, ref: true}
	p.index[key] = n

	if p.hand == nil {
		n.next = n
		p.hand = n
		return
	}
	n.next = p.hand.next
	p.hand.next = n
}

// TryEvict rotates the hand: a node with its reference bit set is given a
// second chance (bit cleared, hand advances); the first node found with
// the bit clear is removed and returned as the victim.
func (p *Clock) TryEvict() (types.PageID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.hand == nil {
		return 0, false
	}

	for {
		cur := p.hand
		if cur.ref {
			cur.ref = false
			p.hand = cur.next
			continue
		}
		p.unlink(cur)
		delete(p.index, cur.key)
		return cur.key, true
	}
}

// TryEvictKey finds key's predecessor in the ring (linear scan) and splices
// it out, moving the hand off it first if needed.
func (p *Clock) TryEvictKey(key types.PageID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	n, ok := p.index[key]
	if !ok {
		return false
	}
	p.unlink(n)
	delete(p.index, key)
	return true
}

// Len reports the number of keys currently tracked.
func (p *Clock) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.index)
}

// unlink splices n out of the ring, fixing the hand and predecessor
// pointer. Caller must hold p.mu. Predecessor lookup is linear in ring
// size, per the spec's note that specific-key removal from CLOCK is O(n).
func (p *Clock) unlink(n *clockNode) {
	if n.next == n {
		// sole node in the ring
		p.hand = nil
		return
	}

	pred := n
	for pred.next != n {
		pred = pred.next
	}
	pred.next = n.next
	if p.hand == n {
		p.hand = n.next
	}
	n.next = nil
}
