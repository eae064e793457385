package event

import (
	"testing"
)

// recordingHandler counts events per type for assertions
type recordingHandler struct {
	types    []Type
	received []Event
}

func (h *recordingHandler) HandleEvent(ev Event) {
	h.received = append(h.received, ev)
}

func (h *recordingHandler) EventTypes() []Type {
	return h.types
}

func TestRouterDispatchOrder(t *testing.T) {
	q := NewQueue()
	r := NewRouter(q)

	first := &recordingHandler{types: []Type{TypeViewportResize}}
	second := &recordingHandler{types: []Type{TypeViewportResize}}
	r.Register(first)
	r.Register(second)

	q.Push(Event{Type: TypeViewportResize, Payload: 1})
	q.Push(Event{Type: TypeViewportResize, Payload: 2})
	r.DispatchAll()

	if len(first.received) != 2 || len(second.received) != 2 {
		t.Fatalf("Expected both handlers to see 2 events, got %d and %d",
			len(first.received), len(second.received))
	}
	if first.received[0].Payload != 1 || first.received[1].Payload != 2 {
		t.Errorf("Events out of FIFO order: %v, %v",
			first.received[0].Payload, first.received[1].Payload)
	}
}

func TestRouterIgnoresUnregisteredTypes(t *testing.T) {
	q := NewQueue()
	r := NewRouter(q)

	h := &recordingHandler{types: []Type{TypeViewportResize}}
	r.Register(h)

	q.Push(Event{Type: TypeDocumentScroll})
	q.Push(Event{Type: TypeMuteToggle})
	r.DispatchAll()

	if len(h.received) != 0 {
		t.Errorf("Handler received %d events for types it never registered", len(h.received))
	}
}

func TestRouterUnregister(t *testing.T) {
	q := NewQueue()
	r := NewRouter(q)

	h := &recordingHandler{types: []Type{TypeViewportResize, TypeModeChange}}
	r.Register(h)

	if r.HandlerCount(TypeViewportResize) != 1 {
		t.Fatalf("Expected 1 handler registered, got %d", r.HandlerCount(TypeViewportResize))
	}

	r.Unregister(h)

	if r.HasHandlers(TypeViewportResize) || r.HasHandlers(TypeModeChange) {
		t.Error("Handler still registered after Unregister")
	}

	q.Push(Event{Type: TypeViewportResize})
	r.DispatchAll()

	if len(h.received) != 0 {
		t.Errorf("Unregistered handler received %d events", len(h.received))
	}
}

// selfRemovingHandler unregisters itself when it sees its first event
type selfRemovingHandler struct {
	router *Router
	count  int
}

func (h *selfRemovingHandler) HandleEvent(ev Event) {
	h.count++
	h.router.Unregister(h)
}

func (h *selfRemovingHandler) EventTypes() []Type {
	return []Type{TypeViewportResize}
}

// TestRouterUnregisterDuringDispatch verifies a handler can tear itself
// down mid-dispatch without corrupting delivery to its peers.
func TestRouterUnregisterDuringDispatch(t *testing.T) {
	q := NewQueue()
	r := NewRouter(q)

	self := &selfRemovingHandler{router: r}
	peer := &recordingHandler{types: []Type{TypeViewportResize}}
	r.Register(self)
	r.Register(peer)

	q.Push(Event{Type: TypeViewportResize})
	q.Push(Event{Type: TypeViewportResize})
	r.DispatchAll()

	if self.count != 1 {
		t.Errorf("Self-removing handler expected 1 event, got %d", self.count)
	}
	if len(peer.received) != 2 {
		t.Errorf("Peer handler expected 2 events, got %d", len(peer.received))
	}
}
