package ports

import (
	"context"
	"time"

	"github.com/forPelevin/dubcut/internal/types"
)

// Fetcher downloads a remote video into a local file.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// Media covers the codec-tool operations the pipeline needs. All of them
// produce a new file at the given output path and fail on non-zero tool exit.
type Media interface {
	// ExtractAudioMono16k derives the canonical mono 16kHz s16 PCM track
	// every downstream engine consumes.
	ExtractAudioMono16k(ctx context.Context, inVideo, outWav string) error
	// ConcatCopy joins the inputs in list order without re-encoding.
	ConcatCopy(ctx context.Context, inputs []string, outPath string) error
	// RemuxCopyVideo combines the original video stream (copied) with the
	// dubbed audio track as the sole audio stream.
	RemuxCopyVideo(ctx context.Context, videoPath, audioPath, outPath string) error
	ProbeDuration(ctx context.Context, path string) (time.Duration, error)
}

// Transcriber turns the canonical WAV into an ordered transcript. language
// is a hint; empty means auto-detect. workDir is where the engine may write
// its own output files.
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath, workDir, language string) (types.Transcript, error)
}

// SpeechRequest is one synthesis call. Voice is empty when the engine has no
// roster; SpeakerWAV optionally supplies reference audio for voice cloning.
type SpeechRequest struct {
	Text       string
	Voice      string
	Language   string
	SpeakerWAV string
	OutPath    string
}

// Speech is the synthesis engine. Voices returns the engine's fixed roster
// of named speakers, or an empty slice for single-speaker models.
type Speech interface {
	Voices(ctx context.Context) ([]string, error)
	Synthesize(ctx context.Context, req SpeechRequest) error
}
