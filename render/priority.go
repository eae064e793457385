package render

// Priority determines layer render order. Lower values render first
type Priority int

const (
	PriorityDocument Priority = iota // Scrolled article content
	PrioritySurface                  // Detached widget surfaces
	PriorityStatusBar
	PriorityOverlay
	PriorityDebug
)
