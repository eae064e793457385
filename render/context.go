package render

import "time"

// Frame provides per-frame state for layer renderers, passed by value.
type Frame struct {
	// Time state
	Now    time.Time
	Delta  float64 // Seconds since previous frame
	Number int64

	// Viewport dimensions (terminal size)
	Width  int
	Height int

	// Document scroll offset, rounded to cells. Layers drawing
	// document-space content translate by this at blit time; screen-space
	// content ignores it.
	ScrollX int
	ScrollY int
}

// DocToScreen converts document coordinates to screen coordinates.
func (f Frame) DocToScreen(x, y int) (int, int) {
	return x - f.ScrollX, y - f.ScrollY
}

// ScreenToDoc converts screen coordinates to document coordinates.
func (f Frame) ScreenToDoc(x, y int) (int, int) {
	return x + f.ScrollX, y + f.ScrollY
}

// RowVisible reports whether a document row intersects the viewport.
func (f Frame) RowVisible(docY int) bool {
	sy := docY - f.ScrollY
	return sy >= 0 && sy < f.Height
}
