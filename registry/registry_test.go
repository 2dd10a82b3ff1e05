package registry

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestNotAvailableUntilPublish(t *testing.T) {
	var s Slot[int]
	if s.IsAvailable() {
		t.Fatal("empty slot reported available")
	}
	if _, ok := s.Acquire(); ok {
		t.Fatal("acquire on empty slot should fail")
	}
}

func TestPublishAndAcquire(t *testing.T) {
	var s Slot[int]
	s.Publish(42, nil)
	if !s.IsAvailable() {
		t.Fatal("expected available after publish")
	}
	h, ok := s.Acquire()
	if !ok || h.Value() != 42 {
		t.Fatalf("Acquire = %v, %v", h.Value(), ok)
	}
	h.Release()
}

func TestReclaimOnlyAfterAllHandlesReleased(t *testing.T) {
	var s Slot[int]
	reclaimed := make(chan int, 1)

	s.Publish(1, func(v int) { reclaimed <- v })
	h1, _ := s.Acquire()

	// Publish a replacement; the old version (1) must not reclaim yet
	// because h1 still holds it.
	s.Publish(2, func(v int) { reclaimed <- v })

	select {
	case v := <-reclaimed:
		t.Fatalf("reclaimed too early: %d", v)
	default:
	}

	h1.Release()

	select {
	case v := <-reclaimed:
		if v != 1 {
			t.Fatalf("reclaimed wrong version: %d", v)
		}
	default:
		t.Fatal("expected reclaim after last handle released")
	}

	h2, ok := s.Acquire()
	if !ok || h2.Value() != 2 {
		t.Fatalf("Acquire after swap = %v, %v", h2.Value(), ok)
	}
	h2.Release()
}

func TestCommitRaceOldAndNewReadersSeeDistinctSnapshots(t *testing.T) {
	var s Slot[string]
	s.Publish("old", nil)

	hOld, _ := s.Acquire()
	s.Publish("new", nil)
	hNew, _ := s.Acquire()

	if hOld.Value() != "old" {
		t.Fatalf("reader A expected old snapshot, got %q", hOld.Value())
	}
	if hNew.Value() != "new" {
		t.Fatalf("reader B expected new snapshot, got %q", hNew.Value())
	}
	hOld.Release()
	hNew.Release()
}

// TestConcurrentAcquireDuringPublishNeverDoubleReclaims races many Acquire
// calls against a Publish that retires the current version. A buggy
// Acquire that speculatively increments refs without checking they're
// still positive can resurrect an already-zeroed refcount and cause the
// matching release to drive it to zero a second time, firing onZero
// twice for one retirement.
func TestConcurrentAcquireDuringPublishNeverDoubleReclaims(t *testing.T) {
	for iter := 0; iter < 200; iter++ {
		var s Slot[int]
		var reclaims atomic.Int64
		s.Publish(1, func(int) { reclaims.Add(1) })

		var wg sync.WaitGroup
		stop := make(chan struct{})
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					select {
					case <-stop:
						return
					default:
					}
					if h, ok := s.Acquire(); ok {
						h.Release()
					}
				}
			}()
		}

		s.Publish(2, func(int) { reclaims.Add(1) })
		close(stop)
		wg.Wait()

		if h, ok := s.Acquire(); ok {
			h.Release()
		}

		if got := reclaims.Load(); got != 1 {
			t.Fatalf("iteration %d: expected exactly 1 reclaim of the retired version, got %d", iter, got)
		}
	}
}
