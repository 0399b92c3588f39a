// Package bufpool is a disk-backed page buffer pool: a fixed-capacity set
// of in-memory frames fronting a flat page file, with pluggable LRU/CLOCK
// replacement, reader/writer latching per frame, and write-through flush.
//
// Grounded on the buffer manager in the B-link tree package this module
// descends from (BufMgr / NewBufMgr in bufmgr.go): the same constructor
// pattern (validate, then build), the same idea of a hash-chained frame
// table guarding a fixed pool of page buffers, and the same latch-before-
// store-I/O discipline, generalized away from that tree's on-disk page
// format and free-list bookkeeping, which this package does not implement.
package bufpool

import (
	"context"

	"github.com/ryogrid/bufpool/internal/buffer"
	"github.com/ryogrid/bufpool/internal/policy"
	"github.com/ryogrid/bufpool/internal/store"
	"github.com/sirupsen/logrus"
)

// BufferManager is the operation contract a disk-backed page buffer pool
// exposes. *Manager is the only implementation; the interface exists so
// callers can substitute a fake in their own tests.
type BufferManager interface {
	Lease(ctx context.Context, id PageID, kind LatchKind) ([]byte, error)
	Return(id PageID, kind LatchKind) error
	MarkDirty(id PageID) (bool, error)
	ReadThrough(ctx context.Context, id PageID) ([]byte, error)
	ReleaseReadThrough(buf []byte)
	Flush(ctx context.Context, id PageID) (bool, error)
	FlushAll(ctx context.Context) error
	Dispose() error
}

var _ BufferManager = (*Manager)(nil)

// Manager is the public buffer pool handle.
type Manager struct {
	core *buffer.Manager
	st   *store.Store
	log  *logrus.Entry
}

// New validates cfg, opens the backing store, and constructs a Manager.
func New(cfg Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log := cfg.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	st, err := store.Open(store.Config{
		Path:          cfg.Path,
		PageSize:      cfg.PageSize,
		FrameCapacity: cfg.FrameCapacity,
		UseDirectIO:   cfg.UseDirectIO,
		Log:           log,
	})
	if err != nil {
		return nil, err
	}

	var pol policy.Policy
	switch cfg.Policy {
	case PolicyClock:
		pol = policy.NewClock()
	default:
		pol = policy.NewLRU()
	}

	log = log.WithFields(logrus.Fields{
		"path":           cfg.Path,
		"page_size":      cfg.PageSize,
		"frame_capacity": cfg.FrameCapacity,
		"policy":         cfg.Policy.String(),
	})
	log.Info("buffer pool opened")

	return &Manager{
		core: buffer.New(cfg.PageSize, cfg.FrameCapacity, st, pol, log, cfg.RentalFactor),
		st:   st,
		log:  log,
	}, nil
}

// Lease resolves id to a resident buffer, loading it from the backing
// store on a miss, and grants the requested latch on it. The returned
// slice is valid until a matching Return.
func (m *Manager) Lease(ctx context.Context, id PageID, kind LatchKind) ([]byte, error) {
	return m.core.Lease(ctx, id, kind)
}

// Return releases the latch of the given kind previously granted by
// Lease.
func (m *Manager) Return(id PageID, kind LatchKind) error {
	return m.core.Return(id, kind)
}

// MarkDirty marks id's frame dirty. The caller must already hold the
// write latch on id. Returns false if id is not resident.
func (m *Manager) MarkDirty(id PageID) (bool, error) {
	return m.core.MarkDirty(id)
}

// ReadThrough reads id directly from the backing store into a buffer the
// caller owns, bypassing the frame table and replacement policy. The
// buffer must be released with ReleaseReadThrough.
func (m *Manager) ReadThrough(ctx context.Context, id PageID) ([]byte, error) {
	return m.core.ReadThrough(ctx, id)
}

// ReleaseReadThrough returns a buffer obtained from ReadThrough.
func (m *Manager) ReleaseReadThrough(buf []byte) {
	m.core.ReleaseReadThrough(buf)
}

// Flush writes id back to the backing store if dirty. The caller must
// hold the write latch on id. Returns false if id is not resident or not
// dirty.
func (m *Manager) Flush(ctx context.Context, id PageID) (bool, error) {
	return m.core.Flush(ctx, id)
}

// FlushAll writes back every currently dirty frame, acquiring each
// frame's write latch itself. Per-frame failures do not stop the sweep;
// they are aggregated into the returned error.
func (m *Manager) FlushAll(ctx context.Context) error {
	return m.core.FlushAll(ctx)
}

// Stats reports a snapshot of buffer pool activity counters.
func (m *Manager) Stats() buffer.Stats {
	return m.core.Stats()
}

// Dispose transitions the Manager to a terminal disposed state and
// closes the backing store. It does not flush; callers wanting durability
// must call FlushAll first. Every operation after Dispose fails with
// KindDisposed.
func (m *Manager) Dispose() error {
	return m.core.Dispose()
}
