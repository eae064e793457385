package event

// Handler processes specific event types
// Subsystems implement this interface to receive routed events
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously during the dispatch phase
	HandleEvent(ev Event)

	// EventTypes returns the event types this handler processes
	// The router uses this for registration
	EventTypes() []Type
}

// Router dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch from the frame loop
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - Handlers may unregister during their own lifecycle teardown
type Router struct {
	handlers map[Type][]Handler
	queue    *Queue
}

// NewRouter creates a router attached to the given queue
func NewRouter(queue *Queue) *Router {
	return &Router{
		handlers: make(map[Type][]Handler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(handler Handler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// Unregister removes a handler from every event type it was registered
// for. Required by subsystems with scoped subscriptions: the geometry
// tracker must stop receiving resize events once closed.
// Copy-on-write so an in-flight DispatchAll iteration stays valid when
// a handler unregisters itself.
func (r *Router) Unregister(handler Handler) {
	for _, t := range handler.EventTypes() {
		list := r.handlers[t]
		for i, h := range list {
			if h == handler {
				next := make([]Handler, 0, len(list)-1)
				next = append(next, list[:i]...)
				next = append(next, list[i+1:]...)
				if len(next) == 0 {
					delete(r.handlers, t)
				} else {
					r.handlers[t] = next
				}
				break
			}
		}
	}
}

// DispatchAll consumes all pending events and routes to handlers
// Events are processed in FIFO order
func (r *Router) DispatchAll() {
	events := r.queue.Consume()
	for _, ev := range events {
		handlers := r.handlers[ev.Type]
		for _, h := range handlers {
			h.HandleEvent(ev)
		}
	}
}

// HasHandlers returns true if any handlers are registered for the given type
func (r *Router) HasHandlers(t Type) bool {
	return len(r.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router) HandlerCount(t Type) int {
	return len(r.handlers[t])
}
