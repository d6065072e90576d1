package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/forPelevin/dubcut/internal/domain/voice"
	"github.com/forPelevin/dubcut/internal/ports"
	"github.com/forPelevin/dubcut/internal/types"
	"github.com/forPelevin/dubcut/internal/wavinfo"
)

// ErrNoInput means neither a usable local video nor a fetchable URL was
// supplied. It aborts the run before any stage executes.
var ErrNoInput = errors.New("no valid input video")

type Deps struct {
	Fetch ports.Fetcher
	Media ports.Media
	ASR   ports.Transcriber
	TTS   ports.Speech
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	// Video is a local file path; it takes precedence over URL when it
	// points at an existing file.
	Video string
	// URL is fetched into the workspace when no usable local path is given.
	URL string

	OutPath    string
	Language   string
	Voice      string
	SpeakerWAV string

	// WorkDir is the run's workspace; every intermediate artifact lives
	// under it. Owned and removed by the caller.
	WorkDir string

	Log *slog.Logger
	// Progress receives the per-segment synthesis progress bar. nil
	// disables rendering.
	Progress io.Writer
}

type Result struct {
	OutPath string
	// Source is the resolved input video (local path or fetched file).
	Source string
	// Segments is the number of synthesized clips; AudioDuration their sum.
	Segments      int
	AudioDuration time.Duration
}

// Run drives one dubbing run through its fixed stage order: resolve source,
// extract audio, transcribe, resolve voice, synthesize per segment,
// concatenate, remux. The first stage error aborts the run.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	log := in.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	src, err := u.resolveSource(ctx, in, log)
	if err != nil {
		return Result{}, err
	}

	log.Info("extracting audio", "source", src)
	wavPath := filepath.Join(in.WorkDir, "audio.wav")
	if err := u.d.Media.ExtractAudioMono16k(ctx, src, wavPath); err != nil {
		return Result{}, fmt.Errorf("extract audio: %w", err)
	}

	log.Info("transcribing", "language", orAuto(in.Language))
	tr, err := u.d.ASR.Transcribe(ctx, wavPath, in.WorkDir, in.Language)
	if err != nil {
		return Result{}, fmt.Errorf("transcribe: %w", err)
	}
	if len(tr.Segments) == 0 {
		return Result{}, errors.New("transcribe: no speech segments found")
	}
	log.Info("transcription done", "segments", len(tr.Segments), "language", orAuto(tr.Language))

	sel, err := u.resolveVoice(ctx, in.Voice, log)
	if err != nil {
		return Result{}, err
	}

	segDir := filepath.Join(in.WorkDir, "segments")
	if err := os.MkdirAll(segDir, 0o755); err != nil {
		return Result{}, err
	}

	clips, err := u.synthesize(ctx, tr.Segments, sel, segDir, in)
	if err != nil {
		return Result{}, err
	}

	// Concat preflight: every clip must exist and parse; a missing or
	// unreadable clip is fatal, never skipped.
	var total time.Duration
	for _, c := range clips {
		d, err := wavinfo.Duration(c)
		if err != nil {
			return Result{}, fmt.Errorf("concat preflight: %w", err)
		}
		total += d
	}
	log.Info("concatenating segments", "clips", len(clips), "duration", total.Round(time.Millisecond))

	full := filepath.Join(in.WorkDir, "dub.wav")
	if err := u.d.Media.ConcatCopy(ctx, clips, full); err != nil {
		return Result{}, err
	}

	log.Info("remuxing dubbed audio with original video", "out", in.OutPath)
	if err := u.d.Media.RemuxCopyVideo(ctx, src, full, in.OutPath); err != nil {
		return Result{}, err
	}

	return Result{
		OutPath:       in.OutPath,
		Source:        src,
		Segments:      len(clips),
		AudioDuration: total,
	}, nil
}

// resolveSource prefers an existing local file; otherwise the URL is fetched
// into the workspace. Anything else is ErrNoInput.
func (u Usecase) resolveSource(ctx context.Context, in Input, log *slog.Logger) (string, error) {
	if in.Video != "" {
		if _, err := os.Stat(in.Video); err == nil {
			return in.Video, nil
		} else if in.URL == "" {
			return "", fmt.Errorf("%w: %s: %v", ErrNoInput, in.Video, err)
		}
	}
	if in.URL == "" {
		return "", ErrNoInput
	}

	log.Info("downloading remote video", "url", in.URL)
	dest := filepath.Join(in.WorkDir, "input.mp4")
	if err := u.d.Fetch.Fetch(ctx, in.URL, dest); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoInput, err)
	}
	return dest, nil
}

// resolveVoice queries the roster and applies the selection policy exactly
// once for the run.
func (u Usecase) resolveVoice(ctx context.Context, requested string, log *slog.Logger) (voice.Selection, error) {
	roster, err := u.d.TTS.Voices(ctx)
	if err != nil {
		return voice.Selection{}, fmt.Errorf("list voices: %w", err)
	}
	sel := voice.Resolve(roster, requested)
	switch {
	case sel.Fallback:
		log.Warn("requested voice not available, falling back",
			"requested", requested, "voice", sel.Speaker, "roster", roster)
	case sel.Speaker != "":
		log.Info("voice selected", "voice", sel.Speaker, "roster", roster)
	}
	return sel, nil
}

// synthesize produces one clip per segment, in index order. The returned
// list is the authoritative concatenation order; the zero-padded file names
// only exist for interop with the external tools.
func (u Usecase) synthesize(ctx context.Context, segs []types.Segment, sel voice.Selection, segDir string, in Input) ([]string, error) {
	bar := newBar(in.Progress, len(segs))
	clips := make([]string, 0, len(segs))
	for i, seg := range segs {
		out := filepath.Join(segDir, fmt.Sprintf("segment_%04d.wav", i))
		req := ports.SpeechRequest{
			Text:       seg.Text,
			Voice:      sel.Speaker,
			Language:   in.Language,
			SpeakerWAV: in.SpeakerWAV,
			OutPath:    out,
		}
		if err := u.d.TTS.Synthesize(ctx, req); err != nil {
			return nil, fmt.Errorf("synthesize segment %d: %w", i, err)
		}
		clips = append(clips, out)
		_ = bar.Add(1)
	}
	return clips, nil
}

func newBar(w io.Writer, total int) *progressbar.ProgressBar {
	if w == nil {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("synthesizing"),
		progressbar.OptionShowCount(),
	)
}

func orAuto(language string) string {
	if language == "" {
		return "auto"
	}
	return language
}
