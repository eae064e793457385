// Package style computes positioning directives for the video widget.
// Resolve is a pure function of (mode, last measured rect, viewport);
// it holds no state and performs no observation, which is what makes
// mode flips cheap enough to re-resolve every frame.
package style

import (
	"math"
	"time"

	"github.com/lixenwraith/viddock/geom"
)

const (
	// FloatingWidth is the nominal corner widget width.
	FloatingWidth = 420

	// FloatingClampMargin is the total horizontal margin reserved when
	// clamping the corner width on narrow viewports: the resolved
	// width never exceeds viewport width minus this value.
	FloatingClampMargin = 48

	// floatingMinWidth keeps the corner widget usable on degenerate
	// viewports where the clamp would go non-positive.
	floatingMinWidth = 16

	// cornerInsetX/Y offset the corner widget from the viewport edge.
	cornerInsetX = 4
	cornerInsetY = 2

	// cellAspect compensates for terminal cells being roughly twice as
	// tall as wide; the 16:9 video region height is computed in cells.
	cellAspect = 2.0

	// TransitionDuration is the uniform smoothing applied to every
	// visible directive change, so a dock/float flip animates instead
	// of snapping.
	TransitionDuration = 250 * time.Millisecond
)

// Stacking order: the fixed corner widget renders above all page
// content; the docked widget sits above its document siblings but
// below floating overlays.
const (
	ZDocked   = 10
	ZFloating = 100
)

// Viewport is the terminal size in cells.
type Viewport struct {
	Width  int
	Height int
}

// Resolve maps the display mode and last measured anchor rect to a
// positioning directive.
//
//   - Floating always resolves to the fixed corner, regardless of rect.
//   - Docked with a known rect resolves to that exact rectangle,
//     rounded to whole cells.
//   - Docked with no rect yet resolves to the hidden placeholder.
func Resolve(mode DisplayMode, rect *geom.Rect, vp Viewport) Directive {
	if mode == ModeFloating {
		return fixedCorner(vp)
	}
	if rect == nil {
		return Directive{Strategy: StrategyHiddenPlaceholder}
	}
	return Directive{
		Strategy:   StrategyAbsoluteRect,
		Rect:       rect.Round(),
		Z:          ZDocked,
		Transition: TransitionDuration,
	}
}

func fixedCorner(vp Viewport) Directive {
	w := vp.Width - FloatingClampMargin
	if w > FloatingWidth {
		w = FloatingWidth
	}
	if w < floatingMinWidth {
		w = floatingMinWidth
		if w > vp.Width-2 {
			w = vp.Width - 2
		}
		if w < 1 {
			w = 1
		}
	}

	h := int(math.Round(float64(w) * 9.0 / 16.0 / cellAspect))
	if h < 1 {
		h = 1
	}

	left := vp.Width - w - cornerInsetX
	top := vp.Height - h - cornerInsetY
	if left < 0 {
		left = 0
	}
	if top < 0 {
		top = 0
	}

	return Directive{
		Strategy:   StrategyFixedCorner,
		Rect:       geom.IntRect{Top: top, Left: left, Width: w, Height: h},
		Z:          ZFloating,
		Transition: TransitionDuration,
	}
}
