package surface

import (
	"sync"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/viddock/geom"
	"github.com/lixenwraith/viddock/render"
	"github.com/lixenwraith/viddock/status"
)

func attachedRegistry(w, h int) (*Registry, *render.Compositor) {
	comp := render.NewCompositor(nil, w, h)
	reg := NewRegistry()
	reg.AttachTo(comp)
	return reg, comp
}

// TestAcquireCreatesOnce verifies N acquires yield one creation and N
// identical pointers.
func TestAcquireCreatesOnce(t *testing.T) {
	reg, _ := attachedRegistry(80, 24)
	st := status.NewRegistry()
	reg.Bind(st)

	first := reg.Acquire(WidgetID)
	if first == nil {
		t.Fatal("Expected a surface from an attached registry")
	}
	for i := 0; i < 9; i++ {
		if got := reg.Acquire(WidgetID); got != first {
			t.Fatalf("Acquire %d returned a different pointer", i)
		}
	}

	if reg.Count() != 1 {
		t.Errorf("Expected 1 surface, got %d", reg.Count())
	}
	if got := st.Ints.Get("surface.created").Load(); got != 1 {
		t.Errorf("Expected created=1, got %d", got)
	}
	if got := st.Ints.Get("surface.acquired").Load(); got != 10 {
		t.Errorf("Expected acquired=10, got %d", got)
	}
}

// TestAcquireConcurrent verifies racing acquires converge on a single
// surviving surface.
func TestAcquireConcurrent(t *testing.T) {
	reg, _ := attachedRegistry(80, 24)

	const workers = 16
	results := make([]*Surface, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results[n] = reg.Acquire(WidgetID)
		}(i)
	}
	wg.Wait()

	if reg.Count() != 1 {
		t.Fatalf("Expected 1 surface after %d concurrent acquires, got %d", workers, reg.Count())
	}
	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatalf("Worker %d got a different surface pointer", i)
		}
	}
}

// TestUnattachedRegistryReturnsNil verifies the headless fail-soft
// path.
func TestUnattachedRegistryReturnsNil(t *testing.T) {
	reg := NewRegistry()
	if got := reg.Acquire(WidgetID); got != nil {
		t.Fatalf("Expected nil from unattached registry, got %v", got)
	}
	reg.AttachTo(nil)
	if got := reg.Acquire(WidgetID); got != nil {
		t.Fatal("Nil compositor must leave the registry unattached")
	}
}

// TestBeginSizesAndHides verifies buffer sizing per placement and the
// invisible path.
func TestBeginSizesAndHides(t *testing.T) {
	reg, _ := attachedRegistry(80, 24)
	s := reg.Acquire("test")

	buf := s.Begin(Placement{
		Rect:    geom.IntRect{Top: 2, Left: 3, Width: 10, Height: 4},
		Space:   SpaceScreen,
		Z:       5,
		Visible: true,
	})
	if buf == nil {
		t.Fatal("Expected a buffer for a visible placement")
	}
	if w, h := buf.Size(); w != 10 || h != 4 {
		t.Errorf("Expected 10x4 buffer, got %dx%d", w, h)
	}

	if got := s.Begin(Placement{Visible: false}); got != nil {
		t.Error("Invisible placement must return nil")
	}
	if got := s.Begin(Placement{Visible: true}); got != nil {
		t.Error("Zero-sized placement must return nil")
	}

	s.Begin(Placement{Rect: geom.IntRect{Width: 5, Height: 2}, Visible: true})
	s.Hide()
	if s.Placement().Visible {
		t.Error("Hide must clear visibility")
	}
}

// TestRenderTranslatesDocumentSpace verifies document-space surfaces
// shift by the scroll offset while screen-space surfaces do not.
func TestRenderTranslatesDocumentSpace(t *testing.T) {
	reg, comp := attachedRegistry(20, 10)

	doc := reg.Acquire("doc")
	b := doc.Begin(Placement{
		Rect:    geom.IntRect{Top: 7, Left: 2, Width: 3, Height: 1},
		Space:   SpaceDocument,
		Z:       1,
		Visible: true,
	})
	b.Text(0, 0, "DDD", tcell.StyleDefault)

	scr := reg.Acquire("scr")
	b = scr.Begin(Placement{
		Rect:    geom.IntRect{Top: 7, Left: 10, Width: 3, Height: 1},
		Space:   SpaceScreen,
		Z:       2,
		Visible: true,
	})
	b.Text(0, 0, "SSS", tcell.StyleDefault)

	out := comp.RenderInto(render.Frame{Width: 20, Height: 10, ScrollY: 5})

	if c, _ := out.Cell(2, 2); c.Rune != 'D' {
		t.Errorf("Document surface expected at row 2 after scroll, got %q", c.Rune)
	}
	if c, _ := out.Cell(10, 7); c.Rune != 'S' {
		t.Errorf("Screen surface must ignore scroll, got %q at row 7", c.Rune)
	}
}

// TestRenderZOrder verifies a higher-Z surface overdraws a lower one.
func TestRenderZOrder(t *testing.T) {
	reg, comp := attachedRegistry(20, 10)

	low := reg.Acquire("low")
	b := low.Begin(Placement{
		Rect:    geom.IntRect{Top: 0, Left: 0, Width: 5, Height: 1},
		Space:   SpaceScreen,
		Z:       10,
		Visible: true,
	})
	b.Text(0, 0, "lllll", tcell.StyleDefault)

	high := reg.Acquire("high")
	b = high.Begin(Placement{
		Rect:    geom.IntRect{Top: 0, Left: 2, Width: 5, Height: 1},
		Space:   SpaceScreen,
		Z:       100,
		Visible: true,
	})
	b.Text(0, 0, "hhhhh", tcell.StyleDefault)

	out := comp.RenderInto(render.Frame{Width: 20, Height: 10})

	if c, _ := out.Cell(1, 0); c.Rune != 'l' {
		t.Errorf("Expected low surface at col 1, got %q", c.Rune)
	}
	if c, _ := out.Cell(3, 0); c.Rune != 'h' {
		t.Errorf("Expected high surface over low at col 3, got %q", c.Rune)
	}
}
