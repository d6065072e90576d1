package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/forPelevin/dubcut/internal/execx"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
	run     execx.Commander
}

func New(ffmpegPath, ffprobePath string, run execx.Commander) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath, run: run}
}

// ExtractAudioMono16k writes a mono 16kHz 16-bit PCM WAV derived from the
// video's audio track.
func (a *Adapter) ExtractAudioMono16k(ctx context.Context, inVideo, outWav string) error {
	if err := a.run.Run(ctx, a.ffmpeg, extractAudioArgs(inVideo, outWav)...); err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}
	return nil
}

// ConcatCopy joins the inputs losslessly in list order via the concat
// demuxer. The file list is written next to the output and removed after.
func (a *Adapter) ConcatCopy(ctx context.Context, inputs []string, outPath string) error {
	if len(inputs) == 0 {
		return errors.New("concat: no input files")
	}
	listPath := outPath + ".txt"
	list, err := concatList(inputs)
	if err != nil {
		return fmt.Errorf("concat: %w", err)
	}
	if err := os.WriteFile(listPath, []byte(list), 0o644); err != nil {
		return fmt.Errorf("concat: write list: %w", err)
	}
	defer os.Remove(listPath)

	if err := a.run.Run(ctx, a.ffmpeg, concatArgs(listPath, outPath)...); err != nil {
		return fmt.Errorf("concat: %w", err)
	}
	return nil
}

// RemuxCopyVideo combines the original video stream (stream-copied, so
// bit-identical) with the dubbed track as the only audio stream.
func (a *Adapter) RemuxCopyVideo(ctx context.Context, videoPath, audioPath, outPath string) error {
	if err := a.run.Run(ctx, a.ffmpeg, remuxArgs(videoPath, audioPath, outPath)...); err != nil {
		return fmt.Errorf("remux: %w", err)
	}
	return nil
}

func (a *Adapter) ProbeDuration(ctx context.Context, path string) (time.Duration, error) {
	b, err := a.run.Output(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

func extractAudioArgs(inVideo, outWav string) []string {
	return []string{
		"-y",
		"-i", inVideo,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		outWav,
	}
}

func concatArgs(listPath, outPath string) []string {
	return []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		outPath,
	}
}

func remuxArgs(videoPath, audioPath, outPath string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", "copy",
		"-map", "0:v:0",
		"-map", "1:a:0",
		outPath,
	}
}

// concatList renders the concat demuxer file list, one absolute path per
// line. Single quotes in paths are escaped for the demuxer.
func concatList(inputs []string) (string, error) {
	var b strings.Builder
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return "", err
		}
		b.WriteString("file '")
		b.WriteString(strings.ReplaceAll(abs, "'", `'\''`))
		b.WriteString("'\n")
	}
	return b.String(), nil
}
