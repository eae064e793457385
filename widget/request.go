package widget

import "github.com/lixenwraith/viddock/player"

// buildRequest assembles the embed load request from the widget props.
// Parameters are forwarded verbatim; the baseline flags request
// autoplay, muted start, looping and inline playback, with the
// playlist target set to the resource itself so looping survives
// playlist-style players.
func buildRequest(props Props, origin string) player.Request {
	return player.Request{
		ResourceID: props.ResourceID,
		Title:      props.Title,

		Autoplay:     true,
		StartMuted:   true,
		Loop:         true,
		LoopPlaylist: props.ResourceID,

		RestrictRelated:     true,
		MinimalBranding:     true,
		Quality:             player.QualityHD720,
		Captions:            true,
		CaptionLang:         props.CaptionLang,
		ProgrammaticControl: true,
		InlinePlayback:      true,
		Origin:              origin,
	}
}
