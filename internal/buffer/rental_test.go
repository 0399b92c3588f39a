package buffer

import (
	"context"
	"testing"
	"time"
)

func TestRentalSize(t *testing.T) {
	tests := []struct {
		name          string
		frameCapacity int
		factor        float64
		want          int
	}{
		{name: "default factor rounds up", frameCapacity: 10, factor: 1.25, want: 13},
		{name: "exact multiple", frameCapacity: 8, factor: 1.25, want: 10},
		{name: "factor at or below one floors to frameCapacity", frameCapacity: 10, factor: 1.0, want: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rentalSize(tt.frameCapacity, tt.factor); got != tt.want {
				t.Errorf("rentalSize(%d, %v) = %d, want %d", tt.frameCapacity, tt.factor, got, tt.want)
			}
		})
	}
}

func TestRental_GetPutRoundTrip(t *testing.T) {
	r := newRental(16, 2, 1.25)

	buf, err := r.get(context.Background())
	if err != nil {
		t.Fatalf("get() error = %v", err)
	}
	if len(buf) != 16 {
		t.Fatalf("get() buffer length = %d, want 16", len(buf))
	}
	buf[0] = 0x42
	r.put(buf)

	got, err := r.get(context.Background())
	if err != nil {
		t.Fatalf("get() error = %v", err)
	}
	if got[0] != 0 {
		t.Errorf("get() after put() returned a buffer with stale data: %x", got[0])
	}
}

func TestRental_GetBlocksThenCancels(t *testing.T) {
	r := newRental(8, 1, 1.0) // rentalSize(1, 1.0) == 1: exactly one buffer

	first, err := r.get(context.Background())
	if err != nil {
		t.Fatalf("get() error = %v", err)
	}
	_ = first

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = r.get(ctx)
	if err == nil {
		t.Fatalf("get() on an exhausted pool with a timed-out context returned nil error")
	}
}
