package event

import (
	"sync"
	"testing"
	"time"
)

// TestQueueBasic tests basic push and consume operations
func TestQueueBasic(t *testing.T) {
	q := NewQueue()

	ev1 := Event{Type: TypeViewportResize, Payload: "a", Frame: 1, Timestamp: time.Now()}
	ev2 := Event{Type: TypeDocumentScroll, Payload: "b", Frame: 2, Timestamp: time.Now()}
	ev3 := Event{Type: TypeModeChange, Payload: "c", Frame: 3, Timestamp: time.Now()}

	q.Push(ev1)
	q.Push(ev2)
	q.Push(ev3)

	events := q.Consume()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}

	// Verify events are in FIFO order
	if events[0].Type != TypeViewportResize || events[0].Payload != "a" {
		t.Errorf("Event 1 mismatch: got type=%v, payload=%v", events[0].Type, events[0].Payload)
	}
	if events[1].Type != TypeDocumentScroll || events[1].Payload != "b" {
		t.Errorf("Event 2 mismatch: got type=%v, payload=%v", events[1].Type, events[1].Payload)
	}
	if events[2].Type != TypeModeChange || events[2].Payload != "c" {
		t.Errorf("Event 3 mismatch: got type=%v, payload=%v", events[2].Type, events[2].Payload)
	}

	// Second consume should return nothing
	if again := q.Consume(); len(again) != 0 {
		t.Errorf("Expected 0 events on second consume, got %d", len(again))
	}
}

// TestQueueConcurrentPush tests concurrent producers
func TestQueueConcurrentPush(t *testing.T) {
	q := NewQueue()
	numGoroutines := 10
	eventsPerGoroutine := 10
	total := numGoroutines * eventsPerGoroutine

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < eventsPerGoroutine; j++ {
				q.Push(Event{
					Type:      TypeViewportResize,
					Payload:   id*100 + j,
					Frame:     int64(j),
					Timestamp: time.Now(),
				})
			}
		}(i)
	}

	wg.Wait()

	events := q.Consume()
	if len(events) != total {
		t.Errorf("Expected %d events, got %d", total, len(events))
	}

	seen := make(map[int]bool)
	for _, ev := range events {
		payload := ev.Payload.(int)
		if seen[payload] {
			t.Errorf("Duplicate payload found: %d", payload)
		}
		seen[payload] = true
	}

	if q.Len() != 0 {
		t.Errorf("Expected queue to be empty, got length %d", q.Len())
	}
}

// TestQueueOverflow tests behavior when pushing more events than the buffer holds
func TestQueueOverflow(t *testing.T) {
	q := NewQueue()

	for i := 0; i < queueSize+44; i++ {
		q.Push(Event{Type: TypeDocumentScroll, Payload: i, Frame: int64(i)})
	}

	events := q.Consume()
	if len(events) > queueSize {
		t.Errorf("Expected at most %d events, got %d", queueSize, len(events))
	}

	// The survivors must be the newest events
	last := events[len(events)-1].Payload.(int)
	if last != queueSize+43 {
		t.Errorf("Expected newest event payload %d, got %d", queueSize+43, last)
	}
}
