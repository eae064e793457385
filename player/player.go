// Package player defines the embedded-player contract. The widget
// treats an Embed as an opaque rectangular region: it forwards a load
// request once, asks for frames, and relays mute state. Everything
// behind that boundary, including the actual playback pipeline, is the
// embed's own business.
package player

import (
	"time"

	"github.com/lixenwraith/viddock/render"
)

// Quality values forwarded in a load request. Opaque to this module;
// the embed interprets or ignores them.
const (
	QualityAuto  = "auto"
	QualityHD720 = "hd720"
)

// Request carries the embed parameters, forwarded verbatim to the
// player on first load. The widget never reinterprets these.
type Request struct {
	ResourceID string
	Title      string

	Autoplay   bool
	StartMuted bool

	// Loop replays the resource; LoopPlaylist names the single-item
	// playlist target, by convention equal to ResourceID.
	Loop         bool
	LoopPlaylist string

	RestrictRelated     bool
	MinimalBranding     bool
	Quality             string
	Captions            bool
	CaptionLang         string
	ProgrammaticControl bool
	InlinePlayback      bool

	// Origin is the embedding page's origin, passed through for the
	// player's restricted-embedding validation.
	Origin string
}

// Embed is the opaque player region.
//
// Load is called exactly once per playback session; the surface broker
// exists so mode flips never force a second Load. Draw renders the
// current frame into the given region of buf, clipped by the buffer
// itself. SetMuted relays the host's mute flag to the player's own
// control channel.
type Embed interface {
	Load(req Request) error
	Draw(now time.Time, buf *render.Buffer, x, y, w, h int)
	SetMuted(muted bool)
	Close() error
}
