package tape

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// The speaker is a process-wide device; initialize it at most once no
// matter how many tapes start audio.
var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	})
	return speakerErr
}

// toneLine is one playing tone: a generator behind pause and volume
// controls. Mute flips the volume's Silent flag rather than pausing,
// so playback position keeps advancing while muted, same as a real
// player.
type toneLine struct {
	ctrl *beep.Ctrl
	vol  *effects.Volume
}

func startTone(freq float64, muted bool) (*toneLine, error) {
	if err := initSpeaker(); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}

	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, fmt.Errorf("tone generator: %w", err)
	}

	ctrl := &beep.Ctrl{Streamer: tone}
	vol := &effects.Volume{
		Streamer: ctrl,
		Base:     2,
		Volume:   -3, // Quiet by default; it is a placeholder hum
		Silent:   muted,
	}

	speaker.Play(vol)
	return &toneLine{ctrl: ctrl, vol: vol}, nil
}

func (l *toneLine) setMuted(muted bool) {
	speaker.Lock()
	l.vol.Silent = muted
	speaker.Unlock()
}

func (l *toneLine) stop() {
	speaker.Lock()
	l.ctrl.Paused = true
	l.ctrl.Streamer = nil
	speaker.Unlock()
}
