// Package buffer implements the buffer manager core: the frame table,
// lease/return, read-through, dirty marking, flush, and overflow eviction
// described by the buffer pool design. It composes a replacement policy
// (internal/policy), a per-frame latch (internal/latch), and a backing
// store adapter (internal/store) behind the lock hierarchy the design
// mandates: frame-table lookup, then policy lock, then per-frame latch,
// then store latch — never reversed.
package buffer

import (
	"context"
	"sync/atomic"

	"github.com/ryogrid/bufpool/internal/policy"
	"github.com/ryogrid/bufpool/internal/store"
	"github.com/ryogrid/bufpool/internal/types"
	"github.com/sirupsen/logrus"
)

// Stats is a point-in-time snapshot of buffer manager activity counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Flushes   uint64
	FlushErrs uint64
	Resident  int64
}

// Manager is the buffer manager core.
type Manager struct {
	pageSize      int
	frameCapacity int

	table  *frameTable
	policy policy.Policy
	store  *store.Store
	rental *rental
	dirty  *dirtyQueue

	resident atomic.Int64
	disposed atomic.Bool

	hits, misses, evictions, flushes, flushErrs atomic.Uint64

	log *logrus.Entry
}

// defaultRentalFactor is the headroom the rental pool carries above
// frameCapacity, per the buffer manager's overshoot-tolerance design.
const defaultRentalFactor = 1.25

// New constructs a buffer manager over an already-open store and policy.
// rentalFactor <= 0 selects defaultRentalFactor.
func New(pageSize, frameCapacity int, st *store.Store, pol policy.Policy, log *logrus.Entry, rentalFactor float64) *Manager {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if rentalFactor <= 0 {
		rentalFactor = defaultRentalFactor
	}
	return &Manager{
		pageSize:      pageSize,
		frameCapacity: frameCapacity,
		table:         newFrameTable(),
		policy:        pol,
		store:         st,
		rental:        newRental(pageSize, frameCapacity, rentalFactor),
		dirty:         newDirtyQueue(),
		log:           log,
	}
}

func (m *Manager) checkDisposed(id types.PageID) error {
	if m.disposed.Load() {
		return &types.Error{Kind: types.KindDisposed, PageID: id, Msg: "buffer manager disposed"}
	}
	return nil
}

// Lease resolves id to a buffer, loading it from the store on a miss. kind
// must be LatchRead or LatchWrite.
func (m *Manager) Lease(ctx context.Context, id types.PageID, kind types.LatchKind) ([]byte, error) {
	if err := m.checkDisposed(id); err != nil {
		return nil, err
	}
	if kind != types.LatchRead && kind != types.LatchWrite {
		return nil, &types.Error{Kind: types.KindBadLatchRequest, PageID: id, Msg: "lease requires Read or Write"}
	}

	if f, ok := m.table.get(id); ok {
		if err := m.acquire(ctx, f, kind); err != nil {
			return nil, err
		}
		m.policy.Bump(id)
		m.hits.Add(1)
		return f.Buffer(), nil
	}
	m.misses.Add(1)
	return m.leaseMiss(ctx, id, kind)
}

func (m *Manager) leaseMiss(ctx context.Context, id types.PageID, kind types.LatchKind) ([]byte, error) {
	buf, err := m.rental.get(ctx)
	if err != nil {
		if be, ok := err.(*types.Error); ok {
			be.PageID = id
		}
		return nil, err
	}
	if err := m.store.ReadPage(ctx, id, buf); err != nil {
		m.rental.put(buf)
		return nil, err
	}

	if int(m.resident.Load()) >= m.frameCapacity {
		m.attemptEviction(ctx)
	}

	fresh := newFrame(id, buf)
	if err := m.acquire(ctx, fresh, kind); err != nil {
		// Nobody else can see this frame yet (not in the table, not bumped
		// into the policy), so only the buffer needs returning.
		m.rental.put(buf)
		return nil, err
	}
	actual, won := m.table.tryAdd(id, fresh)
	if !won {
		// Another installer beat us to it: discard our buffer and adopt
		// the winning frame.
		m.rental.put(buf)
		if err := m.acquire(ctx, actual, kind); err != nil {
			return nil, err
		}
		m.policy.Bump(id)
		return actual.Buffer(), nil
	}

	m.resident.Add(1)
	m.policy.Bump(id)
	return fresh.Buffer(), nil
}

func (m *Manager) acquire(ctx context.Context, f *Frame, kind types.LatchKind) error {
	var err error
	if kind == types.LatchWrite {
		err = f.Latch.Lock(ctx)
	} else {
		err = f.Latch.RLock(ctx)
	}
	if err != nil {
		return &types.Error{Kind: types.KindCancelled, PageID: f.PageID, Cause: err}
	}
	return nil
}

// Return releases the latch of the given kind previously obtained by
// Lease. A non-resident page is a no-op reporting NotFound, since I2
// forbids a latched frame from being evicted in between.
func (m *Manager) Return(id types.PageID, kind types.LatchKind) error {
	if err := m.checkDisposed(id); err != nil {
		return err
	}
	if kind != types.LatchRead && kind != types.LatchWrite {
		return &types.Error{Kind: types.KindBadLatchRequest, PageID: id, Msg: "return requires Read or Write"}
	}
	f, ok := m.table.get(id)
	if !ok {
		return &types.Error{Kind: types.KindNotFound, PageID: id, Msg: "page not resident"}
	}
	if kind == types.LatchWrite {
		f.Latch.Unlock()
	} else {
		f.Latch.RUnlock()
	}
	return nil
}

// MarkDirty sets the dirty flag and enqueues the frame for flushing. The
// caller must already hold the write latch (I4).
func (m *Manager) MarkDirty(id types.PageID) (bool, error) {
	if err := m.checkDisposed(id); err != nil {
		return false, err
	}
	f, ok := m.table.get(id)
	if !ok {
		return false, nil
	}
	if !f.Latch.HasWriteLatch() {
		return false, &types.Error{Kind: types.KindLatchViolation, PageID: id, Msg: "mark_dirty requires the write latch"}
	}
	f.setDirty()
	m.dirty.push(f)
	m.policy.Bump(id)
	return true, nil
}

// ReadThrough bypasses the frame table and policy entirely: it reads the
// page directly into a freshly rented buffer that the caller owns and must
// return via ReleaseReadThrough.
func (m *Manager) ReadThrough(ctx context.Context, id types.PageID) ([]byte, error) {
	if err := m.checkDisposed(id); err != nil {
		return nil, err
	}
	buf, err := m.rental.get(ctx)
	if err != nil {
		if be, ok := err.(*types.Error); ok {
			be.PageID = id
		}
		return nil, err
	}
	if err := m.store.ReadPage(ctx, id, buf); err != nil {
		m.rental.put(buf)
		return nil, err
	}
	return buf, nil
}

// ReleaseReadThrough returns a buffer obtained from ReadThrough to the
// rental pool.
func (m *Manager) ReleaseReadThrough(buf []byte) {
	m.rental.put(buf)
}

// Flush resolves id to a frame and delegates to the single-frame flush.
// The caller must hold the write latch on id, symmetric with MarkDirty.
func (m *Manager) Flush(ctx context.Context, id types.PageID) (bool, error) {
	if err := m.checkDisposed(id); err != nil {
		return false, err
	}
	f, ok := m.table.get(id)
	if !ok {
		return false, nil
	}
	return m.flushCallerHeld(ctx, f)
}

// flushCallerHeld assumes the caller already holds the write latch, per
// the public Flush(id) contract.
func (m *Manager) flushCallerHeld(ctx context.Context, f *Frame) (bool, error) {
	if !f.Dirty() {
		return false, nil
	}
	if !f.Latch.HasWriteLatch() {
		return false, &types.Error{Kind: types.KindLatchViolation, PageID: f.PageID, Msg: "flush requires the write latch"}
	}
	return m.writeBack(ctx, f)
}

// flushOwned acquires the write latch itself before flushing, used by
// FlushAll which sweeps frames with no external latch holder.
func (m *Manager) flushOwned(ctx context.Context, f *Frame) (bool, error) {
	if err := f.Latch.Lock(ctx); err != nil {
		return false, &types.Error{Kind: types.KindCancelled, PageID: f.PageID, Cause: err}
	}
	defer f.Latch.Unlock()

	if !f.Dirty() {
		return false, nil
	}
	return m.writeBack(ctx, f)
}

func (m *Manager) writeBack(ctx context.Context, f *Frame) (bool, error) {
	if err := m.store.WritePage(ctx, f.PageID, f.Buffer()); err != nil {
		m.flushErrs.Add(1)
		m.log.WithError(err).WithField("page_id", f.PageID).Warn("flush failed, dirty flag left set")
		return false, err
	}
	f.clearDirty()
	m.flushes.Add(1)
	return true, nil
}

// FlushAll snapshots the dirty queue and attempts to flush every frame in
// it, continuing after per-frame failures and aggregating them.
func (m *Manager) FlushAll(ctx context.Context) error {
	if err := m.checkDisposed(0); err != nil {
		return err
	}
	snapshot := m.dirty.snapshot()
	var errs []error
	for _, f := range snapshot {
		if _, err := m.flushOwned(ctx, f); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &types.AggregateError{Errors: errs}
	}
	return nil
}

// attemptEviction runs a single eviction attempt, per the spec's "one
// attempt per overflow observation" rule. Failing to find an eligible
// victim never fails the caller's Lease; the new frame is simply installed
// above the soft cap and the next load attempt will try again.
func (m *Manager) attemptEviction(ctx context.Context) {
	victim, ok := m.policy.TryEvict()
	if !ok {
		return
	}
	f, ok := m.table.get(victim)
	if !ok {
		// Race: the frame is already gone. The policy has been stripped
		// of the stale id; nothing further to do.
		return
	}
	if f.Latch.AnyLatchHeld() || f.Dirty() {
		// Ineligible: re-insert so a later sweep tries a different
		// victim, per the open-question resolution in DESIGN.md.
		m.policy.Bump(victim)
		return
	}
	removed, ok := m.table.tryRemove(victim)
	if !ok {
		return
	}
	m.resident.Add(-1)
	m.evictions.Add(1)
	m.rental.put(removed.Buffer())
}

// Stats returns a snapshot of activity counters.
func (m *Manager) Stats() Stats {
	return Stats{
		Hits:      m.hits.Load(),
		Misses:    m.misses.Load(),
		Evictions: m.evictions.Load(),
		Flushes:   m.flushes.Load(),
		FlushErrs: m.flushErrs.Load(),
		Resident:  m.resident.Load(),
	}
}

// Dispose flushes nothing implicitly (callers should FlushAll first if
// durability is required) and transitions the manager to the terminal
// disposed state; every subsequent public operation fails with Disposed.
func (m *Manager) Dispose() error {
	if !m.disposed.CompareAndSwap(false, true) {
		return nil
	}
	return m.store.Close()
}
