// Command viddock is the watch-page demo: a scrollable article with a
// docked video widget that floats to the corner when its anchor
// scrolls away.
//
// Keys: j/k/arrows scroll, space/PgUp/PgDn page, g/G home/end,
// f force float/dock, m mute, x dismiss (floating), d diagnostics,
// q quit.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lixenwraith/viddock/config"
	"github.com/lixenwraith/viddock/document"
	"github.com/lixenwraith/viddock/engine"
	"github.com/lixenwraith/viddock/player/resolve"
	"github.com/lixenwraith/viddock/player/tape"
	"github.com/lixenwraith/viddock/surface"
	"github.com/lixenwraith/viddock/terminal"
)

const pageOrigin = "viddock://watch"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "viddock:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgPath = flag.String("config", "", "TOML config file")
		url     = flag.String("url", "", "resolve widget metadata from this URL via yt-dlp")
		title   = flag.String("title", "", "widget title override")
		logPath = flag.String("log", "", "log file (terminal owns stdout)")
		noAudio = flag.Bool("no-audio", false, "disable the demo audio line")
		fps     = flag.Int("fps", 0, "frame rate override")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	if *noAudio {
		cfg.Audio = false
	}
	if *url != "" {
		cfg.Source.URL = *url
	}
	if *title != "" {
		cfg.Source.Title = *title
	}
	if *logPath != "" {
		cfg.LogFile = *logPath
	}

	log, closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.Source.URL != "" {
		resolveSource(log, &cfg)
	}

	term, err := terminal.NewService()
	if err != nil {
		return err
	}
	if err := term.Init(); err != nil {
		return err
	}

	doc := document.New(cfg.Source.Title, article())
	embed := tape.New(tape.Options{Audio: cfg.Audio})

	e := engine.New(engine.Config{
		FPS:         cfg.FPS,
		AutoFloat:   cfg.AutoFloat,
		ResourceID:  cfg.Source.ID,
		Title:       cfg.Source.Title,
		Accent:      cfg.Accent,
		CaptionLang: cfg.CaptionLang,
		Origin:      pageOrigin,
	}, term, doc, embed, surface.Default())

	log.Info("session start",
		"resource", cfg.Source.ID,
		"fps", cfg.FPS,
		"auto_float", cfg.AutoFloat,
		"audio", cfg.Audio)

	e.Run()

	log.Info("session end",
		"frames", e.Status().Ints.Get("engine.frames").Load(),
		"measures", e.Status().Ints.Get("track.measures").Load(),
		"transitions", e.Status().Ints.Get("widget.transitions").Load())
	return nil
}

// resolveSource fills in ID and title from yt-dlp metadata. Failure is
// logged and the configured label stands.
func resolveSource(log *slog.Logger, cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	meta, err := resolve.Lookup(ctx, cfg.Source.URL)
	if err != nil {
		log.Warn("metadata lookup failed", "url", cfg.Source.URL, "error", err)
		return
	}
	cfg.Source.ID = meta.ID
	if meta.Title != "" {
		cfg.Source.Title = meta.Title
		if meta.Uploader != "" {
			cfg.Source.Title = meta.Title + " — " + meta.Uploader
		}
	}
	log.Info("metadata resolved",
		"id", meta.ID, "title", meta.Title, "duration", meta.Duration)
}

// openLog builds a slog logger on the given file. The terminal owns
// stdout, so without a file the logger discards.
func openLog(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { _ = f.Close() }, nil
}

func article() []string {
	return []string{
		"Picture-in-picture on a terminal sounds like a joke until the layout problem turns out to be the same one every browser fights: a widget that must sit at an exact spot inside a scrolling document one moment and cling to a corner of the screen the next, without the media behind it ever restarting. The two positioning regimes do not mix. Document coordinates flow with the page; the corner is nailed to the glass.",

		"The usual failure is tearing the player down and rebuilding it on the other side of the flip. Playback restarts, buffers drain, and the seam is visible to anyone watching. The fix here is indirection: the widget never renders where it logically lives. Its output projects into a detached surface owned by the compositor, and flipping modes only rewrites that surface's placement.",

		"Geometry is the second trap. The docked widget must know where its anchor sits in the document, but sampling that rectangle on every scroll event glues the widget to the viewport instead of the page, and it swims against the text as you scroll. Measuring only on resize, and converting the sample to document coordinates at that moment, keeps it pinned to the prose where it belongs.",

		"Resize events arrive in bursts, a dozen in a frame while a window edge is dragged. Each one wants a remeasure; running them all is waste. A single-slot scheduler collapses the burst: the last request wins, one measurement runs on the next frame, and the anchor state it reads is whatever is true when the frame actually fires.",

		"There is one more quiet rule. Before the first measurement lands, the docked widget has nowhere honest to be. Drawing it at a guessed position flashes garbage; drawing it at the origin slides it across the screen when the real rectangle arrives. So it simply is not drawn, a zero-sized placeholder that no one can see or click until geometry exists.",

		"Scroll down and the anchor leaves the viewport; the widget lifts off and settles in the corner, still playing the same frames it was. Scroll back and it glides home into the well the article left for it. The player underneath never noticed a thing, which is the entire point.",
	}
}
