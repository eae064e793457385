// Package config loads the demo application's TOML configuration.
// Everything has a working default; a missing file is not an error.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Source selects what the widget plays and how it is labeled.
type Source struct {
	// URL is resolved to metadata through yt-dlp when set.
	URL string `toml:"url"`

	// ID and Title are used directly; resolution output overrides
	// them when URL is set and the lookup succeeds.
	ID    string `toml:"id"`
	Title string `toml:"title"`
}

// Config is the demo session configuration.
type Config struct {
	FPS       int  `toml:"fps"`
	Audio     bool `toml:"audio"`
	AutoFloat bool `toml:"auto_float"`

	// Accent optionally overrides the control strip color, hex form.
	Accent string `toml:"accent"`

	CaptionLang string `toml:"caption_lang"`
	LogFile     string `toml:"log_file"`

	Source Source `toml:"source"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		FPS:         30,
		Audio:       true,
		AutoFloat:   true,
		CaptionLang: "en",
		Source: Source{
			ID:    "demo-tape",
			Title: "Signal Test Pattern",
		},
	}
}

// Load reads path over the defaults. A missing file returns the
// defaults silently; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
