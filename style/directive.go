package style

import (
	"time"

	"github.com/lixenwraith/viddock/geom"
)

// Strategy is the positioning regime a directive selects.
type Strategy uint8

const (
	// StrategyHiddenPlaceholder renders an invisible, non-interactive,
	// zero-sized placeholder. Used while docked before the first
	// geometry measurement lands, preventing a flash of unpositioned
	// content.
	StrategyHiddenPlaceholder Strategy = iota

	// StrategyAbsoluteRect positions at an exact rectangle in document
	// coordinates; the widget scrolls with the page.
	StrategyAbsoluteRect

	// StrategyFixedCorner pins to the bottom-right screen corner,
	// independent of document scroll.
	StrategyFixedCorner
)

func (s Strategy) String() string {
	switch s {
	case StrategyAbsoluteRect:
		return "absolute-rect"
	case StrategyFixedCorner:
		return "fixed-corner"
	default:
		return "hidden-placeholder"
	}
}

// Directive is the resolved positioning for one frame of widget
// layout. Rect is in document coordinates for StrategyAbsoluteRect and
// screen coordinates for StrategyFixedCorner.
type Directive struct {
	Strategy   Strategy
	Rect       geom.IntRect
	Z          int
	Transition time.Duration
}

// Visible reports whether the directive produces drawable output.
func (d Directive) Visible() bool {
	return d.Strategy != StrategyHiddenPlaceholder && d.Rect.Width > 0 && d.Rect.Height > 0
}
