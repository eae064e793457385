// Package track observes the anchor region's on-screen rectangle and
// converts it to document coordinates. Measurements run only in
// response to resize events (never scroll), coalesced to one per frame
// through the single-slot scheduler.
package track

import (
	"sync"

	"github.com/lixenwraith/viddock/geom"
)

// Anchor is a handle to the in-document region the docked widget
// covers. The document view binds a rect source on mount and clears it
// on unmount; the tracker reads through the handle at measure time and
// silently skips the pass when nothing is bound.
type Anchor struct {
	mu     sync.RWMutex
	source func() (geom.Rect, bool)
}

// Bind attaches a source reporting the anchor's current rectangle in
// screen (viewport-relative) coordinates.
func (a *Anchor) Bind(source func() (geom.Rect, bool)) {
	a.mu.Lock()
	a.source = source
	a.mu.Unlock()
}

// Clear detaches the source. Subsequent Rect calls report unset.
func (a *Anchor) Clear() {
	a.mu.Lock()
	a.source = nil
	a.mu.Unlock()
}

// Rect returns the anchor's current screen rectangle, or false when no
// source is bound or the source has nothing to report yet.
func (a *Anchor) Rect() (geom.Rect, bool) {
	a.mu.RLock()
	source := a.source
	a.mu.RUnlock()

	if source == nil {
		return geom.Rect{}, false
	}
	return source()
}
