// Package document renders the scrollable article the widget docks
// into: word-wrapped paragraphs around a proportional anchor block.
// The view owns the scroll offset and the anchor geometry; it knows
// nothing about the widget that covers the anchor.
package document

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/viddock/geom"
	"github.com/lixenwraith/viddock/render"
	"github.com/lixenwraith/viddock/track"
)

const (
	sideMargin = 4
	maxColumn  = 100

	// The anchor block takes this share of the content column, with a
	// 16:9 height corrected for the ~2:1 cell aspect.
	anchorShare  = 0.8
	anchorAspect = 9.0 / 16.0 / 2.0

	// Paragraph index the anchor block follows.
	anchorAfterPara = 2
)

type row struct {
	text   string
	anchor bool
}

// View is the document: title, wrapped body rows, and the anchor
// block. Mutated only from the frame goroutine.
type View struct {
	title      string
	paragraphs []string

	width, height int
	colLeft       int
	colWidth      int

	rows      []row
	anchorDoc geom.Rect
	laidOut   bool

	scrollY   float64
	maxScroll float64

	anchor *track.Anchor

	bodyStyle   tcell.Style
	titleStyle  tcell.Style
	anchorStyle tcell.Style
}

// New creates a view over the given article. Call Resize before the
// first render.
func New(title string, paragraphs []string) *View {
	return &View{
		title:       title,
		paragraphs:  paragraphs,
		bodyStyle:   tcell.StyleDefault.Foreground(tcell.ColorLightGray),
		titleStyle:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
		anchorStyle: tcell.StyleDefault.Foreground(tcell.ColorDimGray),
	}
}

// Mount binds the anchor handle to this view's anchor block. The
// source reports screen coordinates: document position minus the
// current scroll.
func (v *View) Mount(a *track.Anchor) {
	v.anchor = a
	a.Bind(func() (geom.Rect, bool) {
		if !v.laidOut {
			return geom.Rect{}, false
		}
		return v.anchorDoc.Translate(0, -v.scrollY), true
	})
}

// Unmount clears the anchor handle.
func (v *View) Unmount() {
	if v.anchor != nil {
		v.anchor.Clear()
		v.anchor = nil
	}
}

// Resize reflows the document to the new viewport and clamps the
// scroll offset to the new extent.
func (v *View) Resize(width, height int) {
	v.width = width
	v.height = height

	v.colWidth = width - 2*sideMargin
	if v.colWidth > maxColumn {
		v.colWidth = maxColumn
	}
	if v.colWidth < 10 {
		v.colWidth = width
		if v.colWidth < 1 {
			v.colWidth = 1
		}
	}
	v.colLeft = (width - v.colWidth) / 2
	if v.colLeft < 0 {
		v.colLeft = 0
	}

	v.reflow()
	v.clampScroll()
}

func (v *View) reflow() {
	v.rows = v.rows[:0]

	v.rows = append(v.rows, row{text: v.title}, row{})

	anchorW := int(float64(v.colWidth) * anchorShare)
	if anchorW < 4 {
		anchorW = v.colWidth
	}
	anchorH := int(float64(anchorW)*anchorAspect + 0.5)
	if anchorH < 2 {
		anchorH = 2
	}
	anchorLeft := v.colLeft + (v.colWidth-anchorW)/2

	for i, para := range v.paragraphs {
		for _, line := range wrap(para, v.colWidth) {
			v.rows = append(v.rows, row{text: line})
		}
		v.rows = append(v.rows, row{})

		if i == anchorAfterPara-1 {
			v.anchorDoc = geom.Rect{
				Top:    float64(len(v.rows)),
				Left:   float64(anchorLeft),
				Width:  float64(anchorW),
				Height: float64(anchorH),
			}
			for r := 0; r < anchorH; r++ {
				v.rows = append(v.rows, row{anchor: true})
			}
			v.rows = append(v.rows, row{})
		}
	}
	v.laidOut = true

	v.maxScroll = float64(len(v.rows) - v.height)
	if v.maxScroll < 0 {
		v.maxScroll = 0
	}
}

// ScrollBy shifts the scroll offset by dy cells, clamped to the
// document extent. Scrolling changes nothing but the offset; geometry
// measurement deliberately never runs here.
func (v *View) ScrollBy(dy float64) {
	v.scrollY += dy
	v.clampScroll()
}

// ScrollTo jumps to an absolute offset, clamped.
func (v *View) ScrollTo(y float64) {
	v.scrollY = y
	v.clampScroll()
}

func (v *View) clampScroll() {
	if v.scrollY > v.maxScroll {
		v.scrollY = v.maxScroll
	}
	if v.scrollY < 0 {
		v.scrollY = 0
	}
}

// ScrollY returns the current scroll offset.
func (v *View) ScrollY() float64 {
	return v.scrollY
}

// MaxScroll returns the maximum scroll offset.
func (v *View) MaxScroll() float64 {
	return v.maxScroll
}

// AnchorOffscreen reports whether the anchor block is fully outside
// the viewport. Hosts use it as the floating policy trigger.
func (v *View) AnchorOffscreen() bool {
	if !v.laidOut {
		return false
	}
	top := v.anchorDoc.Top - v.scrollY
	return top+v.anchorDoc.Height <= 0 || top >= float64(v.height)
}

// AnchorRect returns the anchor block in document coordinates.
func (v *View) AnchorRect() (geom.Rect, bool) {
	return v.anchorDoc, v.laidOut
}

// Render implements render.LayerRenderer at the document priority.
// The anchor block renders as a dim well; whatever widget covers it
// arrives on a higher layer.
func (v *View) Render(f render.Frame, buf *render.Buffer) {
	for y := 0; y < f.Height; y++ {
		docRow := y + f.ScrollY
		if docRow < 0 || docRow >= len(v.rows) {
			continue
		}
		r := v.rows[docRow]
		switch {
		case r.anchor:
			left := int(v.anchorDoc.Left)
			w := int(v.anchorDoc.Width)
			buf.Fill(left, y, w, 1, '·', v.anchorStyle)
			if docRow == int(v.anchorDoc.Top) {
				buf.Text(left+1, y, " video ", v.anchorStyle)
			}
		case docRow == 0:
			buf.Text(v.colLeft, y, r.text, v.titleStyle)
		default:
			buf.Text(v.colLeft, y, r.text, v.bodyStyle)
		}
	}
}

// wrap word-wraps text to width display cells, hard-splitting words
// wider than the column.
func wrap(text string, width int) []string {
	if width < 1 {
		return nil
	}

	var lines []string
	var line string
	lineW := 0

	flush := func() {
		if line != "" {
			lines = append(lines, line)
			line = ""
			lineW = 0
		}
	}

	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		for w > width {
			// Hard split an overlong word
			flush()
			var head string
			headW := 0
			for _, r := range word {
				rw := runewidth.RuneWidth(r)
				if headW+rw > width {
					break
				}
				head += string(r)
				headW += rw
			}
			lines = append(lines, head)
			word = word[len(head):]
			w = runewidth.StringWidth(word)
		}
		if word == "" {
			continue
		}
		switch {
		case line == "":
			line, lineW = word, w
		case lineW+1+w <= width:
			line += " " + word
			lineW += 1 + w
		default:
			flush()
			line, lineW = word, w
		}
	}
	flush()
	return lines
}
