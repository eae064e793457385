package frame

import (
	"sync"
	"testing"
)

// TestScheduleCoalescesSameKey verifies that repeated schedules under
// one key collapse to a single execution per frame.
func TestScheduleCoalescesSameKey(t *testing.T) {
	s := NewScheduler()

	runs := 0
	for i := 0; i < 25; i++ {
		s.Schedule("measure", func() { runs++ })
	}

	if got := s.RunPending(); got != 1 {
		t.Errorf("Expected 1 task run, got %d", got)
	}
	if runs != 1 {
		t.Errorf("Expected task body to execute once, got %d", runs)
	}
}

// TestScheduleLastWriterWins verifies the replacement task body runs,
// not the first scheduled one.
func TestScheduleLastWriterWins(t *testing.T) {
	s := NewScheduler()

	var got string
	s.Schedule("k", func() { got = "first" })
	replaced := s.Schedule("k", func() { got = "second" })

	if !replaced {
		t.Error("Expected second Schedule to report replacement")
	}

	s.RunPending()
	if got != "second" {
		t.Errorf("Expected last-writer task to run, got %q", got)
	}
}

func TestCancelDropsPending(t *testing.T) {
	s := NewScheduler()

	ran := false
	s.Schedule("k", func() { ran = true })
	s.Cancel("k")

	if got := s.RunPending(); got != 0 {
		t.Errorf("Expected 0 tasks after cancel, got %d", got)
	}
	if ran {
		t.Error("Cancelled task still executed")
	}
}

// TestRunOrderFollowsFirstSchedule verifies keys run in first-schedule
// order and that replacement does not reorder.
func TestRunOrderFollowsFirstSchedule(t *testing.T) {
	s := NewScheduler()

	var order []string
	s.Schedule("a", func() { order = append(order, "a") })
	s.Schedule("b", func() { order = append(order, "b") })
	s.Schedule("c", func() { order = append(order, "c") })
	s.Schedule("a", func() { order = append(order, "a") }) // replace, keeps slot

	s.RunPending()

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("Expected %d runs, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Run %d: expected %q, got %q", i, want[i], order[i])
		}
	}
}

// TestRescheduleDuringRunLandsNextFrame verifies a task scheduled from
// inside RunPending does not execute in the same drain.
func TestRescheduleDuringRunLandsNextFrame(t *testing.T) {
	s := NewScheduler()

	runs := 0
	s.Schedule("k", func() {
		runs++
		s.Schedule("k", func() { runs++ })
	})

	if got := s.RunPending(); got != 1 {
		t.Errorf("First drain: expected 1 task, got %d", got)
	}
	if runs != 1 {
		t.Errorf("First drain: expected 1 execution, got %d", runs)
	}

	if got := s.RunPending(); got != 1 {
		t.Errorf("Second drain: expected 1 task, got %d", got)
	}
	if runs != 2 {
		t.Errorf("Second drain: expected 2 executions total, got %d", runs)
	}
}

// TestConcurrentSchedule verifies Schedule is safe from many
// goroutines and still coalesces to one run per key.
func TestConcurrentSchedule(t *testing.T) {
	s := NewScheduler()

	var mu sync.Mutex
	runs := 0

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Schedule("k", func() {
					mu.Lock()
					runs++
					mu.Unlock()
				})
			}
		}()
	}
	wg.Wait()

	if got := s.RunPending(); got != 1 {
		t.Errorf("Expected 1 coalesced task, got %d", got)
	}
	if runs != 1 {
		t.Errorf("Expected 1 execution, got %d", runs)
	}
}
