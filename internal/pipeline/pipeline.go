package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/forPelevin/dubcut/internal/execx"
	"github.com/forPelevin/dubcut/internal/ports"
	"github.com/forPelevin/dubcut/internal/ports/adapters/coquitts"
	"github.com/forPelevin/dubcut/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/dubcut/internal/ports/adapters/whispercpp"
	"github.com/forPelevin/dubcut/internal/ports/adapters/ytdlp"
	"github.com/forPelevin/dubcut/internal/usecase"
)

type Config struct {
	// Video is a local input path; URL a remote video. One of them is
	// required, Video wins when it points at an existing file.
	Video string
	URL   string

	OutPath    string
	Language   string
	Voice      string
	SpeakerWAV string

	WhisperModel string
	TTSModel     string

	FFmpegPath  string
	FFprobePath string
	YtDlpPath   string
	WhisperPath string
	TTSPath     string

	// TempDir is the base for the run workspace. Empty means os.TempDir.
	TempDir string

	Log *slog.Logger
	// Progress receives the synthesis progress bar; nil disables it.
	Progress io.Writer
}

func (c Config) Validate() error {
	if c.Video == "" && c.URL == "" {
		return errors.New("a local video path or a url is required")
	}
	if c.OutPath == "" {
		return errors.New("output path is empty")
	}
	if c.WhisperModel == "" {
		return errors.New("whisper model path is required")
	}
	if c.TTSModel == "" {
		return errors.New("tts model name is required")
	}
	if c.SpeakerWAV != "" {
		if _, err := os.Stat(c.SpeakerWAV); err != nil {
			return fmt.Errorf("stat speaker wav: %w", err)
		}
	}
	return nil
}

// Run executes one dubbing run: it creates the workspace, wires the real
// tool adapters, drives the usecase, and removes the workspace on every
// exit path.
func Run(ctx context.Context, cfg Config) error {
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	workDir, err := newWorkspace(cfg.TempDir)
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			log.Warn("workspace cleanup failed", "dir", workDir, "error", rmErr)
		}
	}()
	log.Info("workspace ready", "dir", workDir)

	run := execx.New(log)
	media := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath, run)
	uc := usecase.New(usecase.Deps{
		Fetch: ytdlp.New(cfg.YtDlpPath, run),
		Media: media,
		ASR:   whispercpp.New(cfg.WhisperPath, cfg.WhisperModel, run),
		TTS:   coquitts.New(cfg.TTSPath, cfg.TTSModel, run),
	})

	res, err := uc.Run(ctx, usecase.Input{
		Video:      cfg.Video,
		URL:        cfg.URL,
		OutPath:    cfg.OutPath,
		Language:   cfg.Language,
		Voice:      cfg.Voice,
		SpeakerWAV: cfg.SpeakerWAV,
		WorkDir:    workDir,
		Log:        log,
		Progress:   cfg.Progress,
	})
	if err != nil {
		return err
	}

	// The probe is informational only; the run already succeeded.
	if d, probeErr := media.ProbeDuration(ctx, res.OutPath); probeErr != nil {
		log.Info("dubbed video written", "path", res.OutPath, "segments", res.Segments)
	} else {
		log.Info("dubbed video written",
			"path", res.OutPath,
			"segments", res.Segments,
			"video_duration", d.Round(time.Millisecond),
			"audio_duration", res.AudioDuration.Round(time.Millisecond))
	}
	return nil
}

func newWorkspace(base string) (string, error) {
	if base == "" {
		base = os.TempDir()
	}
	dir := filepath.Join(base, "dubcut-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create workspace: %w", err)
	}
	return dir, nil
}

// ensure adapters implement ports
var _ ports.Fetcher = (*ytdlp.Adapter)(nil)
var _ ports.Media = (*ffmpeg.Adapter)(nil)
var _ ports.Transcriber = (*whispercpp.Adapter)(nil)
var _ ports.Speech = (*coquitts.Adapter)(nil)
