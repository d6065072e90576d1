// Package ytdlp fetches remote videos with yt-dlp, requesting the best video
// and audio streams merged into one mp4 container.
package ytdlp

import (
	"context"
	"fmt"
	"os"

	"github.com/forPelevin/dubcut/internal/execx"
)

type Adapter struct {
	bin string
	run execx.Commander
}

func New(binPath string, run execx.Commander) *Adapter {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	return &Adapter{bin: binPath, run: run}
}

func (a *Adapter) Fetch(ctx context.Context, url, dest string) error {
	if err := a.run.Run(ctx, a.bin, fetchArgs(url, dest)...); err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	// yt-dlp can exit zero without producing the merged file (e.g. playlist
	// URLs); the pipeline must not proceed on a missing input.
	if _, err := os.Stat(dest); err != nil {
		return fmt.Errorf("fetch %s: downloaded file missing: %w", url, err)
	}
	return nil
}

func fetchArgs(url, dest string) []string {
	return []string{
		"-f", "bestvideo+bestaudio",
		"--merge-output-format", "mp4",
		"-o", dest,
		url,
	}
}
