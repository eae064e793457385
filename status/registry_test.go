package status

import (
	"sync"
	"testing"
)

// TestMetricMapReturnsCachedPointer verifies repeated Get calls hand
// back the identical pointer so hot paths can cache it.
func TestMetricMapReturnsCachedPointer(t *testing.T) {
	r := NewRegistry()

	a := r.Ints.Get("track.measures")
	b := r.Ints.Get("track.measures")
	if a != b {
		t.Error("Expected identical pointer for repeated Get of same key")
	}

	a.Add(3)
	if b.Load() != 3 {
		t.Errorf("Expected shared counter value 3, got %d", b.Load())
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()

	var wg sync.WaitGroup
	ptrs := make([]*AtomicFloat, 16)
	for i := range ptrs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ptrs[i] = m.Get("doc.scroll")
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(ptrs); i++ {
		if ptrs[i] != ptrs[0] {
			t.Fatal("Concurrent Get created duplicate metric instances")
		}
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 metric, got %d", m.Count())
	}
}

func TestAtomicFloatAdd(t *testing.T) {
	var f AtomicFloat

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()

	if got := f.Get(); got != 400 {
		t.Errorf("Expected 400, got %v", got)
	}
}

// TestSnapshotSortedWithinGroups verifies deterministic overlay output.
func TestSnapshotSortedWithinGroups(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("zeta").Store(1)
	r.Ints.Get("alpha").Store(2)
	r.Strings.Get("widget.mode").Set("docked")

	lines := r.Snapshot()
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if lines[0].Key != "alpha" || lines[1].Key != "zeta" {
		t.Errorf("Int metrics not sorted: %q, %q", lines[0].Key, lines[1].Key)
	}
	if lines[2].Key != "widget.mode" || lines[2].Value != "docked" {
		t.Errorf("String metric wrong: %+v", lines[2])
	}
}
