package widget

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/lixenwraith/viddock/geom"
	"github.com/lixenwraith/viddock/render"
	"github.com/lixenwraith/viddock/surface"
)

const (
	labelMuted  = "◌ muted"
	labelSound  = "♪ sound"
	labelClose  = "✕ close"
	stripHeight = 1
)

// span is a clickable run of cells on the control row, in screen
// coordinates.
type span struct {
	x0, x1, y int
	set       bool
}

func (s span) contains(x, y int) bool {
	return s.set && y == s.y && x >= s.x0 && x < s.x1
}

// hitRegions holds the current frame's clickable geometry. Rebuilt on
// every Compose; zeroed while hidden.
type hitRegions struct {
	visible bool
	bounds  geom.IntRect
	mute    span
	dismiss span
}

// drawControls renders the control strip on the bottom row of the
// surface: mute toggle on the left, title in the middle, dismiss on
// the right while floating only.
func (w *Widget) drawControls(buf *render.Buffer, props Props, floating bool, accent colorful.Color, place surface.Placement, f render.Frame) {
	bw, bh := buf.Size()
	row := bh - stripHeight
	if row < 0 {
		return
	}

	stripStyle := tcell.StyleDefault.
		Foreground(tcell.ColorWhite).
		Background(accentColor(accent))
	buf.Fill(0, row, bw, stripHeight, ' ', stripStyle)

	// Screen position of the strip for hit regions
	sx, sy := place.Rect.Left, place.Rect.Top
	if place.Space == surface.SpaceDocument {
		sx, sy = f.DocToScreen(sx, sy)
	}
	w.hits = hitRegions{
		visible: place.Visible,
		bounds:  geom.IntRect{Top: sy, Left: sx, Width: bw, Height: bh},
	}
	stripY := sy + row

	muteLabel := labelSound
	if props.Muted {
		muteLabel = labelMuted
	}
	x := buf.Text(1, row, muteLabel, stripStyle.Bold(true))
	w.hits.mute = span{x0: sx + 1, x1: sx + x, y: stripY, set: true}

	right := bw - 1
	if floating {
		cw := runewidth.StringWidth(labelClose)
		cx := bw - 1 - cw
		if cx > x {
			buf.Text(cx, row, labelClose, stripStyle.Bold(true))
			w.hits.dismiss = span{x0: sx + cx, x1: sx + cx + cw, y: stripY, set: true}
			right = cx - 1
		}
	}

	if title := props.Title; title != "" {
		avail := right - x - 2
		if avail > 2 {
			t := truncateToWidth(title, avail)
			tx := x + 2 + (avail-runewidth.StringWidth(t))/2
			buf.Text(tx, row, t, stripStyle.Dim(true))
		}
	}
}

func accentColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// truncateToWidth shortens s to at most max display cells, cutting on
// grapheme cluster boundaries so combined emoji and joined clusters in
// titles never split mid-cluster.
func truncateToWidth(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}

	out := make([]byte, 0, len(s))
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		cw := runewidth.StringWidth(cluster)
		if width+cw > max-1 {
			break
		}
		out = append(out, cluster...)
		width += cw
	}
	return string(out) + "…"
}
