package style

// DisplayMode is the externally supplied widget state. The resolver
// never derives it; the host application owns the flag and this
// package only reacts to it.
type DisplayMode uint8

const (
	ModeDocked DisplayMode = iota
	ModeFloating
)

func (m DisplayMode) String() string {
	if m == ModeFloating {
		return "floating"
	}
	return "docked"
}
