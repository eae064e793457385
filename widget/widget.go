// Package widget composes the video widget: the embedded player region
// plus its control strip, projected through the render-surface broker
// instead of the document tree. The host owns every input flag; the
// widget resolves a style from them, draws, and relays control hits
// back through callbacks.
package widget

import (
	"sync/atomic"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/viddock/geom"
	"github.com/lixenwraith/viddock/player"
	"github.com/lixenwraith/viddock/render"
	"github.com/lixenwraith/viddock/status"
	"github.com/lixenwraith/viddock/style"
	"github.com/lixenwraith/viddock/surface"
)

// Props are the externally owned inputs, passed to every Compose. The
// widget derives nothing: ShowFloating and Muted belong to the host,
// and the callbacks forward control activations back to it.
type Props struct {
	ResourceID string
	Title      string

	ShowFloating bool
	Muted        bool

	OnToggleMute func()
	OnDismiss    func()

	// Accent optionally overrides the control strip accent, as a hex
	// color string. Invalid or empty values fall back to the mode
	// accents.
	Accent string

	CaptionLang string
}

// Widget renders one video widget into the shared surface.
type Widget struct {
	broker *surface.Registry
	embed  player.Embed
	origin string

	loaded bool
	surf   *surface.Surface
	anim   animator

	lastStrategy style.Strategy
	hits         hitRegions

	dockedAccent   colorful.Color
	floatingAccent colorful.Color

	transitions *atomic.Int64
	modeGauge   *status.AtomicString
}

// New creates a widget projecting embed through broker. origin is the
// page origin forwarded with the embed request.
func New(broker *surface.Registry, embed player.Embed, origin string) *Widget {
	docked, _ := colorful.Hex("#33691e")
	floating, _ := colorful.Hex("#1e5068")
	return &Widget{
		broker:         broker,
		embed:          embed,
		origin:         origin,
		lastStrategy:   style.StrategyHiddenPlaceholder,
		dockedAccent:   docked,
		floatingAccent: floating,
	}
}

// Bind caches metric pointers in the status registry.
func (w *Widget) Bind(st *status.Registry) {
	if st == nil {
		return
	}
	w.transitions = st.Ints.Get("widget.transitions")
	w.modeGauge = st.Strings.Get("widget.mode")
}

// Surface returns the widget's render surface, or nil before the first
// successful Compose. Hosts use it to address the rendered node.
func (w *Widget) Surface() *surface.Surface {
	return w.surf
}

// Compose runs one frame of widget output: resolve the directive from
// (mode, rect), advance the transition, and draw the player region and
// control strip into the shared surface. rect is the tracker's last
// document-space measurement, nil before the first one.
//
// With no surface available (headless, broker unattached) Compose
// renders nothing and returns false.
func (w *Widget) Compose(f render.Frame, props Props, rect *geom.Rect) bool {
	mode := style.ModeDocked
	if props.ShowFloating {
		mode = style.ModeFloating
	}
	d := style.Resolve(mode, rect, style.Viewport{Width: f.Width, Height: f.Height})

	if w.surf == nil {
		w.surf = w.broker.Acquire(surface.WidgetID)
	}
	if w.surf == nil {
		return false
	}

	// Load exactly once. The surface outlives mode flips, so this is
	// the only load the embed ever sees.
	if !w.loaded {
		_ = w.embed.Load(buildRequest(props, w.origin))
		w.loaded = true
	}

	w.noteStrategy(d.Strategy, mode)

	place, accent := w.anim.step(f.Now, f.ScrollX, f.ScrollY, d, w.accentFor(mode, props))
	buf := w.surf.Begin(place)
	w.hits = hitRegions{}
	if buf == nil {
		return true
	}

	bw, bh := buf.Size()
	controlRow := bh - 1
	if controlRow > 0 {
		w.embed.Draw(f.Now, buf, 0, 0, bw, controlRow)
	}
	w.drawControls(buf, props, d.Strategy == style.StrategyFixedCorner, accent, place, f)
	return true
}

// Hide withdraws the widget's output, for hosts that dismiss it
// entirely. The next Compose snaps back into place.
func (w *Widget) Hide() {
	if w.surf != nil {
		w.surf.Hide()
	}
	w.anim.reset()
	w.hits = hitRegions{}
}

// HandleMouse hit-tests a click at screen coordinates against the
// control strip, invoking the matching callback. Returns true when the
// click landed anywhere on the visible widget (callers stop
// propagation). The hidden placeholder never hit-tests.
func (w *Widget) HandleMouse(x, y int, props Props) bool {
	if !w.hits.visible {
		return false
	}
	if !w.hits.bounds.Contains(x, y) {
		return false
	}
	if w.hits.mute.contains(x, y) && props.OnToggleMute != nil {
		props.OnToggleMute()
		return true
	}
	if w.hits.dismiss.contains(x, y) && props.OnDismiss != nil {
		props.OnDismiss()
		return true
	}
	return true
}

func (w *Widget) accentFor(mode style.DisplayMode, props Props) colorful.Color {
	if props.Accent != "" {
		if c, err := colorful.Hex(props.Accent); err == nil {
			return c
		}
	}
	if mode == style.ModeFloating {
		return w.floatingAccent
	}
	return w.dockedAccent
}

func (w *Widget) noteStrategy(s style.Strategy, mode style.DisplayMode) {
	if s != w.lastStrategy {
		visibleFlip := s != style.StrategyHiddenPlaceholder &&
			w.lastStrategy != style.StrategyHiddenPlaceholder
		if visibleFlip && w.transitions != nil {
			w.transitions.Add(1)
		}
		w.lastStrategy = s
	}
	if w.modeGauge != nil {
		w.modeGauge.Set(mode.String())
	}
}
