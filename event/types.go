package event

import (
	"time"
)

// Type identifies a kind of application event.
type Type int

const (
	// TypeViewportResize signals a terminal size change
	// Trigger: terminal service on resize
	// Consumers: geometry tracker (schedules re-measure), document (reflow)
	// Payload: *ResizePayload
	TypeViewportResize Type = iota

	// TypeDocumentScroll signals a document scroll offset change
	// Trigger: input handling (wheel, arrows, paging)
	// Consumers: none by contract; the tracker deliberately ignores scroll
	// Payload: *ScrollPayload
	TypeDocumentScroll

	// TypeAnchorMeasured signals the tracker committed a fresh anchor rect
	// Trigger: tracker measurement pass
	// Payload: *AnchorMeasuredPayload
	TypeAnchorMeasured

	// TypeModeChange signals the docked/floating flag flipped
	// Trigger: input handling or scroll policy in the host application
	// Consumer: widget composer | Payload: *ModeChangePayload
	TypeModeChange

	// TypeMuteToggle signals a mute toggle request from a control
	// Trigger: widget mute control activation
	// Consumer: host application (owns the mute flag) | Payload: nil
	TypeMuteToggle

	// TypeWidgetDismiss signals the floating widget's dismiss control
	// Trigger: widget dismiss control activation
	// Consumer: host application | Payload: nil
	TypeWidgetDismiss

	// TypeDebugToggle flips the diagnostics overlay
	// Trigger: input handling | Payload: nil
	TypeDebugToggle

	// TypeQuit requests application shutdown
	// Trigger: input handling | Payload: nil
	TypeQuit
)

// Event is a single application event with metadata.
type Event struct {
	Type      Type
	Payload   any
	Frame     int64 // Frame counter at emission, for deduplication
	Timestamp time.Time
}

// ResizePayload carries the new viewport dimensions in cells.
type ResizePayload struct {
	Width  int
	Height int
}

// ScrollPayload carries the new absolute scroll offset in cells.
type ScrollPayload struct {
	OffsetY float64
}

// AnchorMeasuredPayload carries the measured anchor rect in document
// coordinates.
type AnchorMeasuredPayload struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// ModeChangePayload carries the new floating flag.
type ModeChangePayload struct {
	Floating bool
}
