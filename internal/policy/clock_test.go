package policy

import (
	"testing"

	"github.com/ryogrid/bufpool/internal/types"
)

// TestClock_SecondChance exercises the defining CLOCK behavior: a freshly
// re-bumped key survives a sweep that would otherwise have evicted it,
// and the node evicted in its place is whichever neighbor's bit was
// already clear.
func TestClock_SecondChance(t *testing.T) {
	p := NewClock()
	p.Bump(1)
	p.Bump(2)
	p.Bump(3)

	// All three reference bits start true, so the first TryEvict takes a
	// full lap clearing each one before evicting the node the hand
	// started on.
	first, ok := p.TryEvict()
	if !ok || first != 1 {
		t.Fatalf("TryEvict() = (%d, %v), want (1, true)", first, ok)
	}

	// Give key 3 a second chance before the next sweep reaches it.
	p.Bump(3)

	second, ok := p.TryEvict()
	if !ok {
		t.Fatalf("TryEvict() ok = false")
	}
	if second == 3 {
		t.Errorf("TryEvict() evicted key 3 despite its renewed reference bit")
	}
	if second != 2 {
		t.Errorf("TryEvict() = %d, want 2", second)
	}
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}

	third, ok := p.TryEvict()
	if !ok || third != 3 {
		t.Errorf("TryEvict() = (%d, %v), want (3, true) on the final key", third, ok)
	}
}

func TestClock_EmptyPolicy(t *testing.T) {
	p := NewClock()
	if _, ok := p.TryEvict(); ok {
		t.Errorf("TryEvict() on an empty policy returned ok = true")
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}

func TestClock_DrainsAllKeysEventually(t *testing.T) {
	p := NewClock()
	keys := []types.PageID{1, 2, 3, 4, 5}
	for _, k := range keys {
		p.Bump(k)
	}

	seen := make(map[types.PageID]bool)
	for i := 0; i < len(keys); i++ {
		got, ok := p.TryEvict()
		if !ok {
			t.Fatalf("TryEvict() ok = false after only %d of %d keys drained", i, len(keys))
		}
		if seen[got] {
			t.Fatalf("TryEvict() returned %d twice", got)
		}
		seen[got] = true
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after draining every key", p.Len())
	}
}

func TestClock_TryEvictKey(t *testing.T) {
	p := NewClock()
	p.Bump(1)
	p.Bump(2)
	p.Bump(3)

	if !p.TryEvictKey(2) {
		t.Fatalf("TryEvictKey(2) = false, want true")
	}
	if p.TryEvictKey(2) {
		t.Errorf("TryEvictKey(2) a second time = true, want false")
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}

	seen := make(map[types.PageID]bool)
	for i := 0; i < 2; i++ {
		got, ok := p.TryEvict()
		if !ok {
			t.Fatalf("TryEvict() ok = false")
		}
		seen[got] = true
	}
	if seen[2] {
		t.Errorf("TryEvict() returned key 2, which was already removed")
	}
}

func TestClock_SoleNodeRing(t *testing.T) {
	p := NewClock()
	p.Bump(1)
	if !p.TryEvictKey(1) {
		t.Fatalf("TryEvictKey(1) = false on the sole node in the ring")
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
	// Ring must still be usable after emptying.
	p.Bump(2)
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after re-inserting into a drained ring", p.Len())
	}
}
