// Package resolve looks up display metadata for a resource URL through
// yt-dlp. The demo uses it to label the widget; playback itself never
// touches this path.
package resolve

import (
	"context"
	"fmt"
	"sync"
	"time"

	ytdlp "github.com/lrstanley/go-ytdlp"
)

// Meta is the subset of extracted metadata the widget can display.
type Meta struct {
	ID       string
	Title    string
	Uploader string
	Duration time.Duration
}

var installOnce sync.Once

// Lookup fetches metadata for url without downloading media. The
// yt-dlp binary is installed on first use; install failure is left for
// Run to surface as an availability error.
func Lookup(ctx context.Context, url string) (*Meta, error) {
	installOnce.Do(func() {
		_, _ = ytdlp.Install(ctx, nil)
	})

	cmd := ytdlp.New().
		SkipDownload().
		NoCheckCertificates().
		DumpJSON()

	res, err := cmd.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp run: %w", err)
	}

	infos, err := res.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("parse yt-dlp json: %w", err)
	}

	for _, info := range infos {
		if info == nil {
			continue
		}
		// Playlist container: take the first playable entry
		if len(info.Entries) > 0 {
			for _, e := range info.Entries {
				if e != nil {
					return metaFrom(e.ID, e.Title, e.Uploader, e.Duration), nil
				}
			}
			continue
		}
		return metaFrom(info.ID, info.Title, info.Uploader, info.Duration), nil
	}
	return nil, fmt.Errorf("parse yt-dlp json: no info returned")
}

func metaFrom(id string, title, uploader *string, duration *float64) *Meta {
	m := &Meta{ID: id}
	if title != nil {
		m.Title = *title
	}
	if uploader != nil {
		m.Uploader = *uploader
	}
	if duration != nil {
		m.Duration = time.Duration(*duration * float64(time.Second))
	}
	return m
}
