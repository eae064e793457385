package track

import (
	"sync/atomic"

	"github.com/lixenwraith/viddock/event"
	"github.com/lixenwraith/viddock/frame"
	"github.com/lixenwraith/viddock/geom"
	"github.com/lixenwraith/viddock/status"
)

// measureSlot is the tracker's key in the frame scheduler. One key,
// one slot: a resize burst within a frame collapses to one measurement.
const measureSlot = "track.measure"

// Tracker converts the anchor's screen rectangle to document
// coordinates on every resize, one measurement per frame at most.
//
// Scroll deliberately produces no measurement. The stored rect is
// document-relative, so it stays valid while the page scrolls under
// the docked widget; re-measuring on scroll would only add jitter.
type Tracker struct {
	anchor *Anchor
	sched  *frame.Scheduler
	router *event.Router
	scroll func() float64 // Current document scroll offset in cells

	last    atomic.Pointer[geom.Rect]
	started atomic.Bool

	// Invoked after each committed measurement, on the frame goroutine.
	// Optional; the host uses it to publish diagnostics events.
	onMeasure func(geom.Rect)

	measures  *atomic.Int64
	coalesced *atomic.Int64
}

// NewTracker creates a tracker reading through anchor, scheduling
// measurements on sched, and subscribing to resize events on router.
// scroll supplies the document scroll offset at measure time.
func NewTracker(anchor *Anchor, sched *frame.Scheduler, router *event.Router, scroll func() float64) *Tracker {
	return &Tracker{
		anchor: anchor,
		sched:  sched,
		router: router,
		scroll: scroll,
	}
}

// Bind caches metric pointers in the status registry. Call before
// Start; nil registry leaves metrics disabled.
func (t *Tracker) Bind(st *status.Registry) {
	if st == nil {
		return
	}
	t.measures = st.Ints.Get("track.measures")
	t.coalesced = st.Ints.Get("track.coalesced")
}

// OnMeasure sets the post-measurement callback. Call before Start.
func (t *Tracker) OnMeasure(fn func(geom.Rect)) {
	t.onMeasure = fn
}

// Start subscribes to resize events and schedules the initial mount
// measurement. Idempotent.
func (t *Tracker) Start() {
	if !t.started.CompareAndSwap(false, true) {
		return
	}
	t.router.Register(t)
	t.requestMeasure()
}

// Stop cancels any pending measurement and unsubscribes from resize
// events. Idempotent; safe on every teardown path.
func (t *Tracker) Stop() {
	if !t.started.CompareAndSwap(true, false) {
		return
	}
	t.sched.Cancel(measureSlot)
	t.router.Unregister(t)
}

// Rect returns the last measured anchor rectangle in document
// coordinates, or nil before the first successful measurement.
func (t *Tracker) Rect() *geom.Rect {
	return t.last.Load()
}

// EventTypes implements event.Handler. Resize only: scroll events are
// not subscribed, which is what makes scroll-invariance structural
// rather than a filtering rule.
func (t *Tracker) EventTypes() []event.Type {
	return []event.Type{event.TypeViewportResize}
}

// HandleEvent implements event.Handler.
func (t *Tracker) HandleEvent(ev event.Event) {
	if ev.Type != event.TypeViewportResize {
		return
	}
	t.requestMeasure()
}

func (t *Tracker) requestMeasure() {
	if t.sched.Schedule(measureSlot, t.measure) {
		if t.coalesced != nil {
			t.coalesced.Add(1)
		}
	}
}

// measure runs on the frame goroutine when the scheduler flushes. It
// reads the anchor's screen rect and translates it by the scroll
// offset into document coordinates.
func (t *Tracker) measure() {
	screen, ok := t.anchor.Rect()
	if !ok {
		// Anchor unmounted or not laid out yet. Keep the previous
		// value; a stale rect beats a bogus one.
		return
	}

	doc := screen.Translate(0, t.scroll())
	t.last.Store(&doc)

	if t.measures != nil {
		t.measures.Add(1)
	}
	if t.onMeasure != nil {
		t.onMeasure(doc)
	}
}
