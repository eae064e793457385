package status

import (
	"math"
	"sync"
	"sync/atomic"
)

// AtomicFloat provides atomic float64 operations using bit conversion
// Zero value is ready to use (represents 0.0)
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores a float64 value atomically
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the float64 value atomically
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add atomically adds delta to the current value and returns the new value
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// AtomicString is a mutex-guarded string gauge
// Zero value is ready to use (represents "")
type AtomicString struct {
	mu  sync.RWMutex
	val string
}

// Set stores a string value
func (s *AtomicString) Set(val string) {
	s.mu.Lock()
	s.val = val
	s.mu.Unlock()
}

// Get loads the string value
func (s *AtomicString) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.val
}
