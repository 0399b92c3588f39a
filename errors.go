package bufpool

import "github.com/ryogrid/bufpool/internal/types"

// Kind is the taxonomy of error conditions the buffer pool can raise. It
// mirrors the BLTErr sentinel style of the B-link tree buffer manager this
// package grew out of, generalized to a Go error with Is/As support instead
// of a bare comparable enum returned alongside every call.
//
// Kind is an alias for internal/types.Kind: see the comment on PageID in
// types.go for why the definition lives in that leaf package.
type Kind = types.Kind

const (
	// KindIO covers any underlying file seek/read/write fault, including
	// short reads/writes and preallocation failures.
	KindIO = types.KindIO
	// KindShortIO is the ShortIo subcase of KindIO: a read or write
	// transferred fewer bytes than PageSize.
	KindShortIO = types.KindShortIO
	// KindLatchViolation is raised when MarkDirty or Flush is invoked
	// without the write latch held by the caller.
	KindLatchViolation = types.KindLatchViolation
	// KindBadLatchRequest is raised when LatchNone is passed to Lease or
	// Return, where a directional latch is required.
	KindBadLatchRequest = types.KindBadLatchRequest
	// KindDisposed is raised when any operation is invoked after Dispose.
	KindDisposed = types.KindDisposed
	// KindCancelled is raised when the caller's context is done while the
	// operation was suspended.
	KindCancelled = types.KindCancelled
	// KindNotFound is raised by Return when releasing a latch for a page
	// that is not resident.
	KindNotFound = types.KindNotFound
	// KindAggregateIO names the aggregate failure of FlushAll. FlushAll
	// reports it as an *AggregateError, which carries no Kind; no *Error
	// of this kind is returned.
	KindAggregateIO = types.KindAggregateIO
)

// Error is the concrete error type surfaced by every public operation. It
// always carries the Kind and, where known, the offending page id and/or
// file offset so callers can log or retry deterministically. Alias for
// internal/types.Error.
type Error = types.Error

// ErrKind builds a bare sentinel usable with errors.Is to test only the
// Kind of a returned error, e.g. errors.Is(err, ErrKind(KindDisposed)).
func ErrKind(k Kind) error { return types.ErrKind(k) }

// AggregateError collects the per-frame failures from FlushAll. It
// implements Unwrap() []error so errors.Is/errors.As see through to any
// individual failure, following the stdlib errors.Join idiom. Alias for
// internal/types.AggregateError.
type AggregateError = types.AggregateError
