package render

// LayerRenderer is implemented by subsystems with visual output
type LayerRenderer interface {
	Render(f Frame, buf *Buffer)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}
