package bufpool

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// PolicyKind selects which replacement policy a Manager uses.
type PolicyKind int

const (
	PolicyLRU PolicyKind = iota
	PolicyClock
)

func (k PolicyKind) String() string {
	switch k {
	case PolicyLRU:
		return "lru"
	case PolicyClock:
		return "clock"
	default:
		return "unknown"
	}
}

// minFrameCapacity mirrors the teacher's sanity check on pool size
// (NewBufMgr's floor on its hash table), generalized down to the
// smallest pool this design can still evict from: one frame to hold
// the page under load plus room for at least one other resident.
const minFrameCapacity = 2

// Config configures a Manager.
type Config struct {
	// Path is the backing file path. Required.
	Path string

	// PageSize is the fixed size in bytes of every page. Required, > 0.
	PageSize int

	// FrameCapacity is the soft cap on resident frames before eviction is
	// attempted. Required, >= minFrameCapacity.
	FrameCapacity int

	// Policy selects the replacement policy. Defaults to PolicyLRU.
	Policy PolicyKind

	// UseDirectIO requests a best-effort O_DIRECT-style open of the
	// backing file; the store falls back silently if unsupported.
	UseDirectIO bool

	// RentalFactor is the headroom the rental buffer pool carries above
	// FrameCapacity (ceil(FrameCapacity*RentalFactor) buffers). Defaults
	// to 1.25 when <= 0; overridable for tests that want to observe
	// overshoot behavior at a tighter or looser margin.
	RentalFactor float64

	// Log receives structured log entries. Defaults to the standard
	// logrus logger.
	Log *logrus.Entry
}

func (c Config) validate() error {
	if c.Path == "" {
		return &Error{Kind: KindIO, Msg: "path must not be empty"}
	}
	if c.PageSize <= 0 {
		return &Error{Kind: KindIO, Msg: "page size must be positive"}
	}
	if c.FrameCapacity < minFrameCapacity {
		return &Error{Kind: KindIO, Msg: fmt.Sprintf("frame capacity too small: %d (minimum %d)", c.FrameCapacity, minFrameCapacity)}
	}
	return nil
}
