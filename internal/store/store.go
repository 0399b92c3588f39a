// Package store implements the backing store adapter: a single file opened
// for random-access read/write with write-through semantics, one page at a
// time, serialized through a single store latch because the underlying
// file cursor/descriptor is shared state. Grounded on the PageIn/PageOut
// pair in the B-link tree buffer manager (bufmgr.go), generalized from that
// manager's fixed page-zero-plus-header format to the flat, header-less
// page file the buffer pool core specifies.
package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ryogrid/bufpool/internal/types"
	"github.com/sirupsen/logrus"
)

// Config configures the backing store.
type Config struct {
	Path           string
	PageSize       int
	FrameCapacity  int  // drives the preallocation size request
	UseDirectIO    bool // best-effort O_DIRECT open; falls back silently
	Log            *logrus.Entry
}

// Store is the backing store adapter. All reads and writes are sequenced
// through mu because a single *os.File cursor is shared state; each
// operation seeks explicitly rather than relying on ReadAt/WriteAt so the
// "seek resolved to a different offset" failure mode in the spec is
// directly observable, matching the seek-then-read/write pairing the
// teacher's own PageIn/PageOut perform under its allocation-area latch.
type Store struct {
	mu       sync.Mutex
	file     *os.File
	pageSize int64
	log      *logrus.Entry
}

// Open opens or creates the backing file, preallocates
// page_size*frame_capacity bytes on a best-effort basis, and applies
// random-access I/O hints where the platform supports them.
func Open(cfg Config) (*Store, error) {
	if cfg.PageSize <= 0 {
		return nil, &types.Error{Kind: types.KindIO, Msg: "page size must be positive"}
	}
	log := cfg.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	f, err := openBacking(cfg.Path, cfg.UseDirectIO)
	if err != nil {
		return nil, &types.Error{Kind: types.KindIO, Msg: "open backing file", Cause: err}
	}

	want := int64(cfg.PageSize) * int64(cfg.FrameCapacity)
	if want > 0 {
		if err := preallocate(f, want); err != nil {
			log.WithError(err).Debug("preallocation not honored by this filesystem")
		}
	}
	if err := randomAccessHint(f); err != nil {
		log.WithError(err).Debug("random-access hint not honored by this platform")
	}

	return &Store{file: f, pageSize: int64(cfg.PageSize), log: log}, nil
}

// offset returns the byte offset of id: page 1 at 0, page n at (n-1)*pageSize.
func (s *Store) offset(id types.PageID) int64 {
	return (int64(id) - 1) * s.pageSize
}

// ReadPage reads exactly PageSize bytes for id into out, which must already
// be sized to PageSize. It seeks, then reads, under the store latch.
func (s *Store) ReadPage(ctx context.Context, id types.PageID, out []byte) error {
	if err := ctx.Err(); err != nil {
		return &types.Error{Kind: types.KindCancelled, PageID: id, Cause: err}
	}
	return s.withStoreLatch(func() error {
		off := s.offset(id)
		resolved, err := s.file.Seek(off, io.SeekStart)
		if err != nil {
			return &types.Error{Kind: types.KindIO, PageID: id, Offset: off, Msg: "seek", Cause: err}
		}
		if resolved != off {
			return &types.Error{Kind: types.KindShortIO, PageID: id, Offset: off, Msg: "seek resolved to a different offset"}
		}
		n, err := io.ReadFull(s.file, out)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return &types.Error{Kind: types.KindIO, PageID: id, Offset: off, Msg: "read", Cause: err}
		}
		if int64(n) != s.pageSize {
			return &types.Error{Kind: types.KindShortIO, PageID: id, Offset: off, Msg: fmt.Sprintf("short read: %d/%d bytes", n, s.pageSize)}
		}
		return nil
	})
}

// WritePage seeks then writes exactly PageSize bytes for id, write-through
// (no OS-buffered delay expected beyond what the platform itself imposes).
func (s *Store) WritePage(ctx context.Context, id types.PageID, buf []byte) error {
	if err := ctx.Err(); err != nil {
		return &types.Error{Kind: types.KindCancelled, PageID: id, Cause: err}
	}
	return s.withStoreLatch(func() error {
		off := s.offset(id)
		resolved, err := s.file.Seek(off, io.SeekStart)
		if err != nil {
			return &types.Error{Kind: types.KindIO, PageID: id, Offset: off, Msg: "seek", Cause: err}
		}
		if resolved != off {
			return &types.Error{Kind: types.KindShortIO, PageID: id, Offset: off, Msg: "seek resolved to a different offset"}
		}
		n, err := s.file.Write(buf)
		if err != nil {
			return &types.Error{Kind: types.KindIO, PageID: id, Offset: off, Msg: "write", Cause: err}
		}
		if int64(n) != s.pageSize {
			return &types.Error{Kind: types.KindShortIO, PageID: id, Offset: off, Msg: fmt.Sprintf("short write: %d/%d bytes", n, s.pageSize)}
		}
		return s.file.Sync()
	})
}

// withStoreLatch guarantees release on all exit paths, including panics,
// as the spec's scoped-acquisition primitive requires.
func (s *Store) withStoreLatch(op func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return op()
}

// Close closes the backing file.
func (s *Store) Close() error {
	return s.file.Close()
}
