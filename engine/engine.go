// Package engine wires the subsystems into the frame loop: terminal
// input, event dispatch, deferred-task flush, widget composition, and
// the compositor render, one pass per tick. The engine is also the
// "host application" of the widget contract: it owns the floating,
// mute, and dismissed flags the widget only reacts to.
package engine

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/viddock/document"
	"github.com/lixenwraith/viddock/event"
	"github.com/lixenwraith/viddock/frame"
	"github.com/lixenwraith/viddock/geom"
	"github.com/lixenwraith/viddock/player"
	"github.com/lixenwraith/viddock/render"
	"github.com/lixenwraith/viddock/status"
	"github.com/lixenwraith/viddock/surface"
	"github.com/lixenwraith/viddock/terminal"
	"github.com/lixenwraith/viddock/track"
	"github.com/lixenwraith/viddock/widget"
)

// Config tunes the engine for one session.
type Config struct {
	FPS int

	// AutoFloat flips the widget to floating whenever the anchor block
	// scrolls fully out of view, the way a watch page would. The 'f'
	// key overrides in either direction.
	AutoFloat bool

	ResourceID  string
	Title       string
	Accent      string
	CaptionLang string

	// Origin is forwarded to the embed as the page origin.
	Origin string
}

// Engine owns the frame loop and all per-session state.
type Engine struct {
	cfg   Config
	term  *terminal.Service
	queue *event.Queue
	rout  *event.Router
	sched *frame.Scheduler
	clock *frame.Clock
	comp  *render.Compositor
	st    *status.Registry

	doc     *document.View
	anchor  *track.Anchor
	tracker *track.Tracker
	wdg     *widget.Widget
	embed   player.Embed

	// Host-owned widget inputs
	manualFloat *bool // nil until 'f' overrides the policy
	muted       bool
	dismissed   bool

	debug *debugOverlay
	quit  bool

	framesMetric *atomic.Int64
	scrollGauge  *status.AtomicFloat
}

// New assembles an engine over the given terminal service, document
// and embed. The surface registry attaches to the fresh compositor, so
// widgets acquired through it become visible in this engine's output.
func New(cfg Config, term *terminal.Service, doc *document.View, embed player.Embed, surfaces *surface.Registry) *Engine {
	w, h := term.Size()
	if w <= 0 {
		w, h = 80, 24
	}

	e := &Engine{
		cfg:    cfg,
		term:   term,
		queue:  event.NewQueue(),
		sched:  frame.NewScheduler(),
		clock:  frame.NewClock(cfg.FPS),
		comp:   render.NewCompositor(term.Screen(), w, h),
		st:     status.NewRegistry(),
		doc:    doc,
		anchor: &track.Anchor{},
		embed:  embed,
	}
	e.rout = event.NewRouter(e.queue)

	doc.Resize(w, h)
	doc.Mount(e.anchor)
	e.comp.Register(doc, render.PriorityDocument)

	surfaces.AttachTo(e.comp)
	surfaces.Bind(e.st)

	e.tracker = track.NewTracker(e.anchor, e.sched, e.rout, doc.ScrollY)
	e.tracker.Bind(e.st)
	e.tracker.OnMeasure(func(r geom.Rect) {
		e.queue.Push(event.Event{
			Type:      event.TypeAnchorMeasured,
			Payload:   &event.AnchorMeasuredPayload{Top: r.Top, Left: r.Left, Width: r.Width, Height: r.Height},
			Timestamp: time.Now(),
		})
	})

	e.wdg = widget.New(surfaces, embed, cfg.Origin)
	e.wdg.Bind(e.st)

	e.debug = newDebugOverlay(e.st)
	e.comp.Register(e.debug, render.PriorityDebug)

	e.framesMetric = e.st.Ints.Get("engine.frames")
	e.scrollGauge = e.st.Floats.Get("doc.scroll")

	return e
}

// Run drives the session until quit. Blocks the calling goroutine;
// teardown releases the tracker, embed and terminal on every path.
func (e *Engine) Run() {
	e.term.Start()
	e.tracker.Start()

	defer func() {
		e.tracker.Stop()
		e.doc.Unmount()
		_ = e.embed.Close()
		e.term.Stop()
	}()

	e.clock.Run(e.step)
}

// step is one frame: drain inputs, dispatch events, flush deferred
// tasks, compose the widget, render.
func (e *Engine) step(now time.Time, delta float64, frameNo int64) bool {
	e.drainInput(frameNo)
	e.rout.DispatchAll()
	e.sched.RunPending()

	w, h := e.comp.Size()
	f := render.Frame{
		Now:     now,
		Delta:   delta,
		Number:  frameNo,
		Width:   w,
		Height:  h,
		ScrollY: int(math.Round(e.doc.ScrollY())),
	}

	if e.dismissed {
		e.wdg.Hide()
	} else {
		e.wdg.Compose(f, e.props(), e.tracker.Rect())
	}

	e.comp.RenderFrame(f)

	e.framesMetric.Add(1)
	e.scrollGauge.Set(e.doc.ScrollY())

	return !e.quit
}

// props assembles the widget inputs from host state.
func (e *Engine) props() widget.Props {
	return widget.Props{
		ResourceID:   e.cfg.ResourceID,
		Title:        e.cfg.Title,
		ShowFloating: e.showFloating(),
		Muted:        e.muted,
		Accent:       e.cfg.Accent,
		CaptionLang:  e.cfg.CaptionLang,
		OnToggleMute: e.toggleMute,
		OnDismiss:    e.dismiss,
	}
}

// showFloating is the host policy: manual override wins, otherwise
// auto-float follows anchor visibility.
func (e *Engine) showFloating() bool {
	if e.manualFloat != nil {
		return *e.manualFloat
	}
	return e.cfg.AutoFloat && e.doc.AnchorOffscreen()
}

func (e *Engine) toggleMute() {
	e.muted = !e.muted
	e.embed.SetMuted(e.muted)
	e.queue.Push(event.Event{Type: event.TypeMuteToggle, Timestamp: time.Now()})
}

func (e *Engine) dismiss() {
	if !e.showFloating() {
		return
	}
	e.dismissed = true
	e.queue.Push(event.Event{Type: event.TypeWidgetDismiss, Timestamp: time.Now()})
}

func (e *Engine) drainInput(frameNo int64) {
	for {
		select {
		case ev := <-e.term.Resizes():
			e.handleResize(ev, frameNo)
		case ev := <-e.term.Keys():
			e.handleKey(ev, frameNo)
		case ev := <-e.term.Mice():
			e.handleMouse(ev)
		default:
			return
		}
	}
}

func (e *Engine) handleResize(ev terminal.ResizeEvent, frameNo int64) {
	e.comp.Resize(ev.Width, ev.Height)
	e.doc.Resize(ev.Width, ev.Height)
	e.queue.Push(event.Event{
		Type:      event.TypeViewportResize,
		Payload:   &event.ResizePayload{Width: ev.Width, Height: ev.Height},
		Frame:     frameNo,
		Timestamp: time.Now(),
	})
}

func (e *Engine) handleKey(ev *tcell.EventKey, frameNo int64) {
	_, h := e.comp.Size()
	page := float64(h - 2)

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		e.quit = true
		return
	case tcell.KeyDown:
		e.scroll(1, frameNo)
		return
	case tcell.KeyUp:
		e.scroll(-1, frameNo)
		return
	case tcell.KeyPgDn:
		e.scroll(page, frameNo)
		return
	case tcell.KeyPgUp:
		e.scroll(-page, frameNo)
		return
	case tcell.KeyHome:
		e.scrollTo(0, frameNo)
		return
	case tcell.KeyEnd:
		e.scrollTo(e.doc.MaxScroll(), frameNo)
		return
	}

	switch ev.Rune() {
	case 'q':
		e.quit = true
		e.queue.Push(event.Event{Type: event.TypeQuit, Frame: frameNo, Timestamp: time.Now()})
	case 'j':
		e.scroll(1, frameNo)
	case 'k':
		e.scroll(-1, frameNo)
	case ' ':
		e.scroll(page, frameNo)
	case 'g':
		e.scrollTo(0, frameNo)
	case 'G':
		e.scrollTo(e.doc.MaxScroll(), frameNo)
	case 'f':
		e.toggleFloat(frameNo)
	case 'm':
		e.toggleMute()
	case 'x':
		e.dismiss()
	case 'd':
		e.debug.Toggle()
		e.queue.Push(event.Event{Type: event.TypeDebugToggle, Frame: frameNo, Timestamp: time.Now()})
	}
}

func (e *Engine) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	switch {
	case ev.Buttons()&tcell.WheelDown != 0:
		e.scroll(3, 0)
	case ev.Buttons()&tcell.WheelUp != 0:
		e.scroll(-3, 0)
	case ev.Buttons()&tcell.Button1 != 0:
		if e.dismissed {
			return
		}
		e.wdg.HandleMouse(x, y, e.props())
	}
}

func (e *Engine) scroll(dy float64, frameNo int64) {
	e.doc.ScrollBy(dy)
	e.publishScroll(frameNo)
}

func (e *Engine) scrollTo(y float64, frameNo int64) {
	e.doc.ScrollTo(y)
	e.publishScroll(frameNo)
}

// publishScroll announces the new offset for diagnostics. No subsystem
// measures geometry from it; the tracker does not subscribe.
func (e *Engine) publishScroll(frameNo int64) {
	e.queue.Push(event.Event{
		Type:      event.TypeDocumentScroll,
		Payload:   &event.ScrollPayload{OffsetY: e.doc.ScrollY()},
		Frame:     frameNo,
		Timestamp: time.Now(),
	})
}

func (e *Engine) toggleFloat(frameNo int64) {
	next := !e.showFloating()
	e.manualFloat = &next
	e.queue.Push(event.Event{
		Type:      event.TypeModeChange,
		Payload:   &event.ModeChangePayload{Floating: next},
		Frame:     frameNo,
		Timestamp: time.Now(),
	})
}

// Status exposes the metrics registry for the host and tests.
func (e *Engine) Status() *status.Registry {
	return e.st
}

// Stop requests loop shutdown from another goroutine.
func (e *Engine) Stop() {
	e.clock.Stop()
}
