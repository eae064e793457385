// Package frame provides deferred-task scheduling aligned to the
// render loop. Tasks scheduled under the same key coalesce: a second
// request before the frame fires replaces the first (last-writer-wins,
// a single slot per key, not a queue). The frame loop drains pending
// tasks exactly once per tick, so bursty upstream events collapse to
// one execution per frame.
package frame

import "sync"

type slot struct {
	fn  func()
	seq int
}

// Scheduler holds at most one pending task per key.
// Schedule and Cancel are safe from any goroutine; RunPending is
// called by the frame loop only.
type Scheduler struct {
	mu      sync.Mutex
	pending map[string]slot
	seq     int
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		pending: make(map[string]slot),
	}
}

// Schedule queues fn under key for the next frame. If a task is
// already pending under the same key it is replaced, keeping its
// position in the run order. Returns true when an existing task was
// coalesced away.
func (s *Scheduler) Schedule(key string, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, replaced := s.pending[key]
	seq := prev.seq
	if !replaced {
		seq = s.seq
		s.seq++
	}
	s.pending[key] = slot{fn: fn, seq: seq}
	return replaced
}

// Cancel drops any pending task under key.
func (s *Scheduler) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, key)
}

// Pending returns the number of keys with a task waiting.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// RunPending executes all pending tasks in schedule order and clears
// the slots. Tasks scheduled during execution land in the next frame.
// Returns the number of tasks run.
func (s *Scheduler) RunPending() int {
	s.mu.Lock()
	if len(s.pending) == 0 {
		s.mu.Unlock()
		return 0
	}
	batch := make([]slot, 0, len(s.pending))
	for _, sl := range s.pending {
		batch = append(batch, sl)
	}
	s.pending = make(map[string]slot)
	s.mu.Unlock()

	// Insertion sort by sequence; batches are tiny
	for i := 1; i < len(batch); i++ {
		for j := i; j > 0 && batch[j].seq < batch[j-1].seq; j-- {
			batch[j], batch[j-1] = batch[j-1], batch[j]
		}
	}

	for _, sl := range batch {
		sl.fn()
	}
	return len(batch)
}
