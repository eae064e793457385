// Package status is a process-wide metrics facade. Subsystems cache
// metric pointers at construction and write to the atomics directly
// from their hot paths; the diagnostics overlay reads a snapshot once
// per frame.
//
// Well-known keys:
//
//	track.measures     counter: geometry recomputations executed
//	track.coalesced    counter: measure requests absorbed by a pending slot
//	surface.created    counter: detached surfaces created (expect 1)
//	surface.acquired   counter: broker lookups
//	widget.transitions counter: docked/floating style flips
//	widget.mode        gauge: current display mode name
//	doc.scroll         gauge: current scroll offset
//	engine.frames      counter: frames rendered
package status

import (
	"fmt"
	"sync/atomic"
)

// Registry is the central metrics facade
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Line is one rendered metric for the diagnostics overlay.
type Line struct {
	Key   string
	Value string
}

// Snapshot renders every metric as a key/value line, grouped by type
// and sorted by key within each group.
func (r *Registry) Snapshot() []Line {
	lines := make([]Line, 0, r.TotalCount())
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		lines = append(lines, Line{Key: key, Value: fmt.Sprintf("%d", ptr.Load())})
	})
	r.Floats.Range(func(key string, ptr *AtomicFloat) {
		lines = append(lines, Line{Key: key, Value: fmt.Sprintf("%.2f", ptr.Get())})
	})
	r.Bools.Range(func(key string, ptr *atomic.Bool) {
		lines = append(lines, Line{Key: key, Value: fmt.Sprintf("%t", ptr.Load())})
	})
	r.Strings.Range(func(key string, ptr *AtomicString) {
		lines = append(lines, Line{Key: key, Value: ptr.Get()})
	})
	return lines
}
