package frame

import (
	"sync/atomic"
	"time"
)

// DefaultFPS is the frame rate used when the host does not override it.
const DefaultFPS = 30

// Clock drives the frame loop at a fixed interval. Run blocks on the
// calling goroutine; Stop may be called from any goroutine and is
// idempotent.
type Clock struct {
	interval time.Duration
	stopCh   chan struct{}
	stopped  atomic.Bool
	frames   atomic.Int64
}

// NewClock creates a clock ticking fps times per second.
func NewClock(fps int) *Clock {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Clock{
		interval: time.Second / time.Duration(fps),
		stopCh:   make(chan struct{}),
	}
}

// Frames returns the number of ticks delivered so far.
func (c *Clock) Frames() int64 {
	return c.frames.Load()
}

// Stop ends the loop after the current tick.
func (c *Clock) Stop() {
	if c.stopped.CompareAndSwap(false, true) {
		close(c.stopCh)
	}
}

// Run ticks until Stop is called or step returns false. step receives
// the tick time, seconds since the previous tick, and the frame
// number. Slow frames skip ahead rather than queueing catch-up ticks.
func (c *Clock) Run(step func(now time.Time, delta float64, frame int64) bool) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-c.stopCh:
			return
		case now := <-ticker.C:
			delta := now.Sub(last).Seconds()
			last = now
			n := c.frames.Add(1)
			if !step(now, delta, n) {
				return
			}
		}
	}
}
