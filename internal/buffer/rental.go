package buffer

import (
	"context"
	"math"

	"github.com/ryogrid/bufpool/internal/types"
)

// rental is the fixed-size buffer pool pages are rented from. It is sized
// at ceil(frameCapacity*factor) (factor 1.25 by default) so a burst of concurrent misses can hold
// transient overshoot above frameCapacity without admission ever failing
// for want of a buffer, per the buffer-pool's race semantics. Grounded on
// the teacher's preallocated pagePool []Page slice (bufmgr.go), replacing
// its fixed slot-per-latch-entry scheme with a free-list channel sized
// independently of the frame table so overshoot is possible by design.
type rental struct {
	pageSize int
	free     chan []byte
}

func newRental(pageSize, frameCapacity int, factor float64) *rental {
	size := rentalSize(frameCapacity, factor)
	r := &rental{pageSize: pageSize, free: make(chan []byte, size)}
	for i := 0; i < size; i++ {
		r.free <- make([]byte, pageSize)
	}
	return r
}

// rentalSize computes ceil(frameCapacity*factor), with a floor of
// frameCapacity so a factor <= 1 never starves admission outright.
func rentalSize(frameCapacity int, factor float64) int {
	size := int(math.Ceil(float64(frameCapacity) * factor))
	if size < frameCapacity {
		size = frameCapacity
	}
	return size
}

// get rents a buffer, blocking until one is available or ctx is cancelled.
func (r *rental) get(ctx context.Context) ([]byte, error) {
	select {
	case buf := <-r.free:
		return buf, nil
	case <-ctx.Done():
		return nil, &types.Error{Kind: types.KindCancelled, Msg: "rental pool", Cause: ctx.Err()}
	}
}

// put returns a buffer to the pool. A buffer returned must not be
// retained by the caller afterward.
func (r *rental) put(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	select {
	case r.free <- buf:
	default:
		// Pool is at capacity (should not happen if sizing invariants
		// hold); drop the buffer rather than block or panic.
	}
}
