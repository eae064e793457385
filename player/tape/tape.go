// Package tape is the built-in demo embed: an animated glyph field
// standing in for video frames, with an optional looping tone through
// the speaker. It exists so the widget has something real to project
// while the actual player integration stays out of scope.
package tape

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/viddock/player"
	"github.com/lixenwraith/viddock/render"
)

// Shade ramp from dark to bright, indexed by field intensity.
const shades = " .:-=+*#%@"

// Options configures the demo embed.
type Options struct {
	// Audio enables the looping tone. Speaker init failure degrades to
	// silent playback, never to an error.
	Audio bool
}

// Tape implements player.Embed.
type Tape struct {
	opts Options

	mu     sync.Mutex
	req    player.Request
	start  time.Time
	dark   colorful.Color
	bright colorful.Color

	loads atomic.Int64
	muted atomic.Bool
	audio *toneLine
}

// New creates an unloaded tape embed.
func New(opts Options) *Tape {
	dark, _ := colorful.Hex("#1c2f4a")
	bright, _ := colorful.Hex("#7fd4ff")
	return &Tape{
		opts:   opts,
		dark:   dark,
		bright: bright,
	}
}

// LoadCount returns how many times Load ran. Tests use it to assert
// the no-reload guarantee across mode flips.
func (t *Tape) LoadCount() int64 {
	return t.loads.Load()
}

// Request returns the request from the most recent Load.
func (t *Tape) Request() player.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.req
}

// Load implements player.Embed. Honors StartMuted and Autoplay;
// everything else is carried for inspection only.
func (t *Tape) Load(req player.Request) error {
	t.loads.Add(1)
	t.muted.Store(req.StartMuted)

	t.mu.Lock()
	t.req = req
	t.start = time.Now()
	t.mu.Unlock()

	if t.opts.Audio && req.Autoplay {
		line, err := startTone(440.0/2, t.muted.Load())
		if err != nil {
			// Silent mode: keep drawing frames without sound
			return nil
		}
		t.mu.Lock()
		t.audio = line
		t.mu.Unlock()
	}
	return nil
}

// SetMuted implements player.Embed.
func (t *Tape) SetMuted(muted bool) {
	t.muted.Store(muted)
	t.mu.Lock()
	line := t.audio
	t.mu.Unlock()
	if line != nil {
		line.setMuted(muted)
	}
}

// Close implements player.Embed.
func (t *Tape) Close() error {
	t.mu.Lock()
	line := t.audio
	t.audio = nil
	t.mu.Unlock()
	if line != nil {
		line.stop()
	}
	return nil
}

// Draw implements player.Embed: an animated interference field with a
// timecode bar on the bottom row of the region. Drawing before Load
// shows a blank screen with a hint, like an embed waiting on its
// resource.
func (t *Tape) Draw(now time.Time, buf *render.Buffer, x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}

	t.mu.Lock()
	loaded := t.loads.Load() > 0
	start := t.start
	resource := t.req.ResourceID
	t.mu.Unlock()

	if !loaded {
		style := tcell.StyleDefault.Foreground(tcell.ColorGray)
		buf.Fill(x, y, w, h, ' ', style)
		buf.Text(x+1, y+h/2, "no media", style)
		return
	}

	elapsed := now.Sub(start)
	tick := elapsed.Seconds()

	fieldH := h - 1
	if fieldH < 1 {
		fieldH = h
	}
	for row := 0; row < fieldH; row++ {
		for col := 0; col < w; col++ {
			v := field(col, row, tick)
			idx := int(v * float64(len(shades)-1))
			c := t.dark.BlendLuv(t.bright, v).Clamped()
			ri, gi, bi := c.RGB255()
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(ri), int32(gi), int32(bi)))
			buf.Set(x+col, y+row, rune(shades[idx]), style)
		}
	}

	if h >= 2 {
		t.drawTimecode(buf, x, y+h-1, w, elapsed, resource)
	}
}

func (t *Tape) drawTimecode(buf *render.Buffer, x, y, w int, elapsed time.Duration, resource string) {
	style := tcell.StyleDefault.
		Foreground(tcell.ColorWhite).
		Background(tcell.ColorDarkSlateGray)
	buf.Fill(x, y, w, 1, ' ', style)

	secs := int(elapsed.Seconds())
	tc := fmt.Sprintf("▶ %02d:%02d ⟳", secs/60, secs%60)
	buf.Text(x+1, y, tc, style)

	if resource != "" && w > len(tc)+len(resource)+4 {
		buf.Text(x+w-len(resource)-1, y, resource, style.Foreground(tcell.ColorLightSlateGray))
	}
}

// field is a cheap deterministic interference pattern in [0, 1].
// Two drifting waves plus a per-cell phase keep it lively without
// allocations or shared state.
func field(x, y int, t float64) float64 {
	a := fastSin(float64(x)*0.35 + t*2.1)
	b := fastSin(float64(y)*0.7 - t*1.3)
	c := fastSin((float64(x)+float64(y))*0.2 + t*0.7)
	v := (a + b + c + 3) / 6
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// fastSin is a Bhaskara-style sine approximation, good enough for
// visual noise and free of math import rounding concerns.
func fastSin(x float64) float64 {
	const pi = 3.141592653589793
	const twoPi = 2 * pi
	x = x - twoPi*float64(int(x/twoPi))
	if x < -pi {
		x += twoPi
	} else if x > pi {
		x -= twoPi
	}
	neg := false
	if x < 0 {
		x = -x
		neg = true
	}
	v := 16 * x * (pi - x) / (5*pi*pi - 4*x*(pi-x))
	if neg {
		return -v
	}
	return v
}
