package policy

import (
	"sync"
	"testing"

	"github.com/ryogrid/bufpool/internal/types"
)

func TestLRU_TryEvictOrder(t *testing.T) {
	tests := []struct {
		name    string
		bumps   []types.PageID
		wantVictims []types.PageID
	}{
		{
			name:        "evicts least recently bumped first",
			bumps:       []types.PageID{1, 2, 3},
			wantVictims: []types.PageID{1, 2, 3},
		},
		{
			name:        "re-bump moves a key to the back of the eviction order",
			bumps:       []types.PageID{1, 2, 3, 1},
			wantVictims: []types.PageID{2, 3, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewLRU()
			for _, k := range tt.bumps {
				p.Bump(k)
			}
			for _, want := range tt.wantVictims {
				got, ok := p.TryEvict()
				if !ok {
					t.Fatalf("TryEvict() ok = false, want victim %d", want)
				}
				if got != want {
					t.Errorf("TryEvict() = %d, want %d", got, want)
				}
			}
			if _, ok := p.TryEvict(); ok {
				t.Errorf("TryEvict() on an empty policy returned ok = true")
			}
		})
	}
}

func TestLRU_TryEvictKey(t *testing.T) {
	p := NewLRU()
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

	got, ok := p.TryEvict()
	if !ok || got != 1 {
		t.Errorf("TryEvict() = (%d, %v), want (1, true)", got, ok)
	}
}

func TestLRU_ConcurrentBumpDrain(t *testing.T) {
	p := NewLRU()
	var wg sync.WaitGroup
	for k := types.PageID(0); k < 100; k++ {
		wg.Add(1)
		go func(key types.PageID) {
			defer wg.Done()
			p.Bump(key)
		}(k)
	}
	wg.Wait()

	if p.Len() != 100 {
		t.Fatalf("Len() = %d, want 100 after 100 concurrent bumps", p.Len())
	}

	seen := make(map[types.PageID]bool)
	for i := 0; i < 100; i++ {
		got, ok := p.TryEvict()
		if !ok {
			t.Fatalf("TryEvict() ok = false after only %d of 100 keys drained", i)
		}
		seen[got] = true
	}
	if len(seen) != 100 {
		t.Fatalf("drained %d distinct keys, want 100", len(seen))
	}
	for k := types.PageID(0); k < 100; k++ {
		if !seen[k] {
			t.Errorf("key %d never drained", k)
		}
	}
}

func TestLRU_BumpIsIdempotentAtFront(t *testing.T) {
	p := NewLRU()
	p.Bump(1)
	p.Bump(1)
	p.Bump(1)
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after repeated bumps of the same key", p.Len())
	}
}
