// Package geom provides document-space geometry for widget layout.
// Document coordinates measure from the top of the full scrollable
// document, not the visible viewport. Values are float64 because
// layout is proportional and aspect-derived sizes are fractional;
// rounding to cells happens once, at style resolution.
package geom

import "math"

// Point is a position or offset in document or screen space.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. Top/Left name the origin edge
// rather than X/Y to make the document-coordinate convention explicit.
type Rect struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// IntRect is a Rect rounded to whole cells.
type IntRect struct {
	Top    int
	Left   int
	Width  int
	Height int
}

// Right returns the exclusive right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// IsZero reports whether the rect is the zero value.
func (r Rect) IsZero() bool {
	return r.Top == 0 && r.Left == 0 && r.Width == 0 && r.Height == 0
}

// Translate returns the rect shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.Left += dx
	r.Top += dy
	return r
}

// Round converts to whole cells, rounding half away from zero on each
// field independently. Sub-cell seams between adjacent widgets are
// avoided by rounding position and size rather than edges.
func (r Rect) Round() IntRect {
	return IntRect{
		Top:    int(math.Round(r.Top)),
		Left:   int(math.Round(r.Left)),
		Width:  int(math.Round(r.Width)),
		Height: int(math.Round(r.Height)),
	}
}

// Rect converts back to float geometry.
func (r IntRect) Rect() Rect {
	return Rect{
		Top:    float64(r.Top),
		Left:   float64(r.Left),
		Width:  float64(r.Width),
		Height: float64(r.Height),
	}
}

// IsZero reports whether the rect is the zero value.
func (r IntRect) IsZero() bool {
	return r.Top == 0 && r.Left == 0 && r.Width == 0 && r.Height == 0
}

// Contains reports whether the cell at (x, y) lies inside the rect.
func (r IntRect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Left+r.Width && y >= r.Top && y < r.Top+r.Height
}

// Lerp interpolates between a and b at parameter t in [0, 1].
func Lerp(a, b Rect, t float64) Rect {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return Rect{
		Top:    a.Top + (b.Top-a.Top)*t,
		Left:   a.Left + (b.Left-a.Left)*t,
		Width:  a.Width + (b.Width-a.Width)*t,
		Height: a.Height + (b.Height-a.Height)*t,
	}
}
