package surface

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/viddock/render"
	"github.com/lixenwraith/viddock/status"
)

// Registry is the render-surface broker: a create-once map from
// well-known IDs to surfaces, blitted into the compositor as one
// layer. Acquire is guarded by an explicit mutex because Go callers
// are genuinely concurrent; duplicate near-simultaneous acquires must
// still converge on a single surviving surface.
type Registry struct {
	mu       sync.Mutex
	attached bool
	surfaces map[string]*Surface
	seq      int

	created  *atomic.Int64
	acquired *atomic.Int64
}

// NewRegistry creates an empty, unattached registry. Until AttachTo is
// called, Acquire returns nil and composers render nothing — the
// fail-soft path for headless contexts.
func NewRegistry() *Registry {
	return &Registry{
		surfaces: make(map[string]*Surface),
	}
}

// Default is the process-wide registry. The floating container is a
// singleton by spec; applications normally attach and acquire through
// this instance, while tests build their own.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Bind caches metric pointers in the status registry.
func (r *Registry) Bind(st *status.Registry) {
	if st == nil {
		return
	}
	r.created = st.Ints.Get("surface.created")
	r.acquired = st.Ints.Get("surface.acquired")
}

// AttachTo registers the registry as the compositor's surface layer
// and marks a rendering root present. A nil compositor leaves the
// registry unattached.
func (r *Registry) AttachTo(comp *render.Compositor) {
	if comp == nil {
		return
	}
	r.mu.Lock()
	already := r.attached
	r.attached = true
	r.mu.Unlock()

	if !already {
		comp.Register(r, render.PrioritySurface)
	}
}

// Acquire returns the surface for id, creating it on first use.
// Returns the same pointer on every subsequent call. Returns nil when
// no rendering root is attached.
func (r *Registry) Acquire(id string) *Surface {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.attached {
		return nil
	}
	if r.acquired != nil {
		r.acquired.Add(1)
	}

	if s, ok := r.surfaces[id]; ok {
		return s
	}
	s := &Surface{id: id, order: r.seq}
	r.seq++
	r.surfaces[id] = s
	if r.created != nil {
		r.created.Add(1)
	}
	return s
}

// Count returns the number of surfaces created so far.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.surfaces)
}

// Render implements render.LayerRenderer. Visible surfaces blit in
// ascending Z order; document-space placements translate by the frame
// scroll offset, screen-space placements blit as-is. Clipping to the
// viewport happens inside Blit.
func (r *Registry) Render(f render.Frame, buf *render.Buffer) {
	r.mu.Lock()
	list := make([]*Surface, 0, len(r.surfaces))
	for _, s := range r.surfaces {
		list = append(list, s)
	}
	r.mu.Unlock()

	sort.Slice(list, func(i, j int) bool {
		pi, _ := list[i].snapshot()
		pj, _ := list[j].snapshot()
		if pi.Z != pj.Z {
			return pi.Z < pj.Z
		}
		return list[i].order < list[j].order
	})

	for _, s := range list {
		place, src := s.snapshot()
		if !place.Visible || src == nil {
			continue
		}
		x, y := place.Rect.Left, place.Rect.Top
		if place.Space == SpaceDocument {
			x, y = f.DocToScreen(x, y)
		}
		buf.Blit(src, x, y)
	}
}
