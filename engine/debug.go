package engine

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/viddock/render"
	"github.com/lixenwraith/viddock/status"
)

// debugOverlay renders the status snapshot in the top-right corner,
// toggled with 'd'. Hidden layers are skipped by the compositor.
type debugOverlay struct {
	st      *status.Registry
	visible atomic.Bool
}

func newDebugOverlay(st *status.Registry) *debugOverlay {
	return &debugOverlay{st: st}
}

func (d *debugOverlay) Toggle() {
	d.visible.Store(!d.visible.Load())
}

// IsVisible implements render.VisibilityToggle.
func (d *debugOverlay) IsVisible() bool {
	return d.visible.Load()
}

// Render implements render.LayerRenderer.
func (d *debugOverlay) Render(f render.Frame, buf *render.Buffer) {
	lines := d.st.Snapshot()
	style := tcell.StyleDefault.
		Foreground(tcell.ColorBlack).
		Background(tcell.ColorDarkGoldenrod)

	width := 0
	for _, l := range lines {
		if n := len(l.Key) + len(l.Value) + 2; n > width {
			width = n
		}
	}
	x := f.Width - width - 1
	if x < 0 {
		x = 0
	}

	for i, l := range lines {
		if i >= f.Height {
			break
		}
		buf.Fill(x, i, width, 1, ' ', style)
		buf.Text(x, i, l.Key, style)
		buf.Text(x+width-len(l.Value), i, l.Value, style)
	}
}
