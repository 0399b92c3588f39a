package bufpool

import "github.com/ryogrid/bufpool/internal/types"

// PageID identifies a page in the backing file. Page ids are positive;
// page 1 lives at file offset 0, page n at (n-1)*PageSize. Ids need not be
// dense but must be positive — PageID(0) is reserved as the zero value /
// "no page" sentinel and is never a valid lease target.
//
// PageID is an alias for internal/types.PageID: the internal store,
// policy, and buffer packages all need this identifier and cannot import
// this root package to get it (that would be an import cycle, since this
// package imports them for their concrete types), so it lives in that leaf
// package and is re-exported here under its public name.
type PageID = types.PageID

// LatchKind selects which latch a caller wants on a frame. Alias for
// internal/types.LatchKind, re-exported for the same reason as PageID.
type LatchKind = types.LatchKind

const (
	// LatchNone requests no latch. No operation takes it (ReadThrough has
	// no latch parameter); passing it to Lease or Return is a
	// BadLatchRequest error.
	LatchNone = types.LatchNone
	// LatchRead requests a shared reader latch: many readers may hold it
	// concurrently as long as no writer holds or is waiting for it.
	LatchRead = types.LatchRead
	// LatchWrite requests the exclusive writer latch.
	LatchWrite = types.LatchWrite
)
