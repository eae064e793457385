// Package surface provides the detached render surfaces that widget
// output projects into. A surface lives in the compositor, not in the
// document element tree, so the same player keeps drawing into the
// same cells across docked/floating flips; only the surface's
// placement changes.
package surface

import (
	"sync"

	"github.com/lixenwraith/viddock/geom"
	"github.com/lixenwraith/viddock/render"
)

// WidgetID is the well-known identifier of the video widget's surface.
// Every widget instance acquires this ID, which is what makes the
// floating container a process-wide singleton.
const WidgetID = "viddock.widget"

// Space selects the coordinate system a placement is expressed in.
type Space uint8

const (
	// SpaceDocument positions relative to the top of the scrollable
	// document; the compositor translates by the scroll offset at blit
	// time, so the surface scrolls with the page.
	SpaceDocument Space = iota

	// SpaceScreen positions relative to the viewport, independent of
	// scroll.
	SpaceScreen
)

// Placement is where and how a surface blits this frame.
type Placement struct {
	Rect    geom.IntRect
	Space   Space
	Z       int
	Visible bool
}

// Surface is a detached cell buffer plus its current placement.
// Created once per ID by the registry and reused for the life of the
// process.
type Surface struct {
	id    string
	order int // Creation sequence, tie-break for equal Z

	mu    sync.Mutex
	buf   *render.Buffer
	place Placement
}

// ID returns the surface's well-known identifier.
func (s *Surface) ID() string {
	return s.id
}

// Begin repositions the surface for the current frame and returns its
// buffer, resized when the placement dimensions changed. Returns nil
// for invisible or degenerate placements; callers draw nothing in that
// case.
func (s *Surface) Begin(p Placement) *render.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.place = p
	if !p.Visible || p.Rect.Width <= 0 || p.Rect.Height <= 0 {
		return nil
	}

	if s.buf == nil {
		s.buf = render.NewBuffer(p.Rect.Width, p.Rect.Height)
	} else if w, h := s.buf.Size(); w != p.Rect.Width || h != p.Rect.Height {
		s.buf.Resize(p.Rect.Width, p.Rect.Height)
	}
	return s.buf
}

// Hide marks the surface invisible until the next Begin.
func (s *Surface) Hide() {
	s.mu.Lock()
	s.place.Visible = false
	s.mu.Unlock()
}

// Placement returns the placement set by the most recent Begin or
// Hide.
func (s *Surface) Placement() Placement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.place
}

func (s *Surface) snapshot() (Placement, *render.Buffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.place, s.buf
}
