package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one terminal cell in a compositing buffer.
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Buffer is a cell grid that layers draw into before a single flush to
// the terminal. Surfaces carry their own small Buffer; the compositor
// owns the screen-sized one.
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a buffer with the specified dimensions.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocating only if capacity is
// insufficient. Contents are cleared.
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear(tcell.StyleDefault)
}

// Size returns buffer dimensions.
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

// Clear resets all cells to a space in the given style using
// exponential copy.
func (b *Buffer) Clear(style tcell.Style) {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Style: style}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes a single cell with bounds checking.
func (b *Buffer) Set(x, y int, r rune, style tcell.Style) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Style: style}
}

// Cell returns the cell at (x, y) and whether it is in bounds.
func (b *Buffer) Cell(x, y int) (Cell, bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[y*b.width+x], true
}

// Text writes a string starting at (x, y), advancing by display width
// and clipping at the right edge. Returns the x position after the
// last written cell.
func (b *Buffer) Text(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= b.width {
			break
		}
		b.Set(x, y, r, style)
		// Blank the shadow cell of a wide rune so stale content
		// cannot show through
		if w == 2 {
			b.Set(x+1, y, ' ', style)
		}
		x += w
	}
	return x
}

// Fill paints a rectangle with one rune and style, clipped to bounds.
func (b *Buffer) Fill(x, y, w, h int, r rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			b.Set(col, row, r, style)
		}
	}
}

// Blit copies src onto b with its top-left at (dstX, dstY), clipping
// to the destination bounds. Source cells are opaque.
func (b *Buffer) Blit(src *Buffer, dstX, dstY int) {
	sw, sh := src.Size()
	for sy := 0; sy < sh; sy++ {
		ty := dstY + sy
		if ty < 0 || ty >= b.height {
			continue
		}
		for sx := 0; sx < sw; sx++ {
			tx := dstX + sx
			if tx < 0 || tx >= b.width {
				continue
			}
			b.cells[ty*b.width+tx] = src.cells[sy*src.width+sx]
		}
	}
}

// FlushTo writes the buffer to a tcell screen and shows it.
func (b *Buffer) FlushTo(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			screen.SetContent(x, y, c.Rune, nil, c.Style)
		}
	}
	screen.Show()
}
