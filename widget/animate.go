package widget

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/viddock/geom"
	"github.com/lixenwraith/viddock/style"
	"github.com/lixenwraith/viddock/surface"
)

// animator smooths directive changes. Interpolation runs in screen
// space, because a dock/float flip crosses coordinate systems: both
// endpoints are projected to the screen each frame (so an ongoing
// scroll keeps the docked endpoint honest), and only once the
// transition settles does the placement adopt the directive's native
// space.
type animator struct {
	hasCurrent bool
	animating  bool
	prev       style.Directive
	from       geom.Rect // Screen-space transition start
	lastScreen geom.Rect
	start      time.Time

	fromAccent colorful.Color
	accent     colorful.Color
}

// reset forgets the current position so the next visible directive
// snaps into place. Used after Hide and from the hidden placeholder:
// the first appearance must not fly in from origin.
func (a *animator) reset() {
	a.hasCurrent = false
	a.animating = false
}

// step advances the animation for this frame and returns the surface
// placement plus the blended accent color.
func (a *animator) step(now time.Time, scrollX, scrollY int, d style.Directive, accent colorful.Color) (surface.Placement, colorful.Color) {
	if d.Strategy == style.StrategyHiddenPlaceholder {
		a.reset()
		a.prev = d
		return surface.Placement{}, accent
	}

	target := screenRect(d, scrollX, scrollY)

	switch {
	case !a.hasCurrent:
		// Snap on first appearance
		a.hasCurrent = true
		a.animating = false
		a.prev = d
		a.accent = accent
	case d != a.prev:
		a.from = a.lastScreen
		a.fromAccent = a.accent
		a.start = now
		a.animating = d.Transition > 0
		a.prev = d
	}

	cur := target
	if a.animating {
		t := float64(now.Sub(a.start)) / float64(d.Transition)
		if t >= 1 {
			a.animating = false
		} else {
			eased := easeInOutCubic(t)
			cur = geom.Lerp(a.from, target, eased)
			a.accent = a.fromAccent.BlendLuv(accent, eased).Clamped()
		}
	}
	if !a.animating {
		a.accent = accent
	}
	a.lastScreen = cur

	if a.animating {
		return surface.Placement{
			Rect:    cur.Round(),
			Space:   surface.SpaceScreen,
			Z:       d.Z,
			Visible: true,
		}, a.accent
	}

	space := surface.SpaceScreen
	rect := d.Rect
	if d.Strategy == style.StrategyAbsoluteRect {
		space = surface.SpaceDocument
	}
	return surface.Placement{
		Rect:    rect,
		Space:   space,
		Z:       d.Z,
		Visible: true,
	}, a.accent
}

// screenRect projects a directive's rectangle to screen coordinates.
func screenRect(d style.Directive, scrollX, scrollY int) geom.Rect {
	r := d.Rect.Rect()
	if d.Strategy == style.StrategyAbsoluteRect {
		r = r.Translate(float64(-scrollX), float64(-scrollY))
	}
	return r
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
