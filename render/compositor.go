package render

import (
	"github.com/gdamore/tcell/v2"
)

type layerEntry struct {
	renderer LayerRenderer
	priority Priority
	index    int // registration order for stable sort
}

// Compositor coordinates the render pipeline: a priority-ordered list
// of layers drawing into one buffer, flushed to the terminal once per
// frame.
type Compositor struct {
	screen   tcell.Screen
	buffer   *Buffer
	fill     tcell.Style
	layers   []layerEntry
	regCount int
}

// NewCompositor creates a compositor with the given screen and dimensions.
func NewCompositor(screen tcell.Screen, width, height int) *Compositor {
	return &Compositor{
		screen: screen,
		buffer: NewBuffer(width, height),
		fill:   tcell.StyleDefault,
		layers: make([]layerEntry, 0, 8),
	}
}

// SetFill sets the style used to clear the buffer each frame.
func (c *Compositor) SetFill(style tcell.Style) {
	c.fill = style
}

// Register adds a layer at the specified priority. Maintains sorted
// order via insertion sort
func (c *Compositor) Register(r LayerRenderer, priority Priority) {
	entry := layerEntry{
		renderer: r,
		priority: priority,
		index:    c.regCount,
	}
	c.regCount++

	pos := len(c.layers)
	for i, e := range c.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	c.layers = append(c.layers, layerEntry{})
	copy(c.layers[pos+1:], c.layers[pos:])
	c.layers[pos] = entry
}

// Resize updates buffer dimensions and syncs the terminal.
func (c *Compositor) Resize(width, height int) {
	c.buffer.Resize(width, height)
	c.screen.Sync()
}

// Size returns the current buffer dimensions.
func (c *Compositor) Size() (int, int) {
	return c.buffer.Size()
}

// RenderFrame executes the render pipeline: clear, render all visible
// layers in priority order, flush to the terminal.
func (c *Compositor) RenderFrame(f Frame) {
	c.buffer.Clear(c.fill)

	for _, entry := range c.layers {
		// Skip if layer implements VisibilityToggle and is not visible
		if vt, ok := entry.renderer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.renderer.Render(f, c.buffer)
	}

	c.buffer.FlushTo(c.screen)
}

// RenderInto runs the pipeline into the internal buffer without
// flushing. Exposed for tests that assert on composed cells.
func (c *Compositor) RenderInto(f Frame) *Buffer {
	c.buffer.Clear(c.fill)
	for _, entry := range c.layers {
		if vt, ok := entry.renderer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.renderer.Render(f, c.buffer)
	}
	return c.buffer
}
