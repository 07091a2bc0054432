package service_test

import (
	"context"
	"testing"
	"time"

	"roompla/internal/model"
	"roompla/internal/service"
)

// recordingCounter scripts per-hour counts and records which hour steps
// were queried.
type recordingCounter struct {
	counts  map[time.Time]int
	queried []time.Time
	exclude []int64
}

func (r *recordingCounter) CountOverlapping(ctx context.Context, roomID string, from, to time.Time, excludeID int64) (int, error) {
	r.queried = append(r.queried, from)
	r.exclude = append(r.exclude, excludeID)
	return r.counts[from], nil
}

func TestAvailable(t *testing.T) {
	ctx := context.Background()
	rm := &model.Room{ID: "A", MaxOccupancy: 2}

	t.Run("walks every hour step including the end boundary", func(t *testing.T) {
		counter := &recordingCounter{counts: map[time.Time]int{}}
		ok, err := service.Available(ctx, counter, rm, hour(9), hour(11), 0)
		if err != nil || !ok {
			t.Fatalf("available = %v, %v", ok, err)
		}
		want := []time.Time{hour(9), hour(10), hour(11)}
		if len(counter.queried) != len(want) {
			t.Fatalf("queried %d steps, want %d", len(counter.queried), len(want))
		}
		for i, q := range counter.queried {
			if !q.Equal(want[i]) {
				t.Fatalf("step %d queried %v, want %v", i, q, want[i])
			}
		}
	})

	t.Run("short-circuits on the first full hour", func(t *testing.T) {
		counter := &recordingCounter{counts: map[time.Time]int{hour(10): 2}}
		ok, err := service.Available(ctx, counter, rm, hour(9), hour(13), 0)
		if err != nil {
			t.Fatalf("available: %v", err)
		}
		if ok {
			t.Fatal("expected rejection")
		}
		if len(counter.queried) != 2 {
			t.Fatalf("expected the walk to stop after hour 10, queried %d steps", len(counter.queried))
		}
	})

	t.Run("count below capacity passes, count at capacity rejects", func(t *testing.T) {
		counter := &recordingCounter{counts: map[time.Time]int{hour(9): 1}}
		if ok, _ := service.Available(ctx, counter, rm, hour(9), hour(10), 0); !ok {
			t.Fatal("one of two slots taken must still be available")
		}
		counter = &recordingCounter{counts: map[time.Time]int{hour(9): 2}}
		if ok, _ := service.Available(ctx, counter, rm, hour(9), hour(10), 0); ok {
			t.Fatal("room at capacity must be rejected")
		}
	})

	t.Run("passes the exclusion through to every count", func(t *testing.T) {
		counter := &recordingCounter{counts: map[time.Time]int{}}
		if _, err := service.Available(ctx, counter, rm, hour(9), hour(10), 42); err != nil {
			t.Fatalf("available: %v", err)
		}
		for _, id := range counter.exclude {
			if id != 42 {
				t.Fatalf("exclusion not propagated: %v", counter.exclude)
			}
		}
	})
}
