// Package policy implements the pluggable replacement-policy abstraction:
// an ordered set of page ids supporting bump (mark used), try-evict-victim,
// and try-evict-specific. Two concrete policies are provided, LRU and
// CLOCK (second-chance), behind the same Policy interface so the buffer
// manager can be built against either without caring which is active.
package policy

import "github.com/ryogrid/bufpool/internal/types"

// Policy is the contract every replacement policy implements. All three
// operations acquire a single policy-wide exclusive lock internally and
// never block on I/O, per the buffer manager's lock hierarchy (the policy
// lock must never be held across a file operation).
type Policy interface {
	// Bump promotes key to the most-recently-used position, inserting it
	// if absent. Repeated calls with the same key are idempotent: the
	// policy never holds more than one entry for a given key.
	Bump(key types.PageID)

	// TryEvict chooses and removes a victim per the policy's order. ok is
	// false when the policy holds no keys.
	TryEvict() (key types.PageID, ok bool)

	// TryEvictKey removes a specific key if present, reporting whether it
	// was found.
	TryEvictKey(key types.PageID) bool

	// Len reports how many keys the policy currently holds.
	Len() int
}
