//go:build integration

package itest

import (
	"context"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/forPelevin/dubcut/internal/pipeline"
)

// TestE2E needs ffmpeg, espeak-ng, whisper.cpp and Coqui TTS locally.
// DUBCUT_ITEST_WHISPER_MODEL must point at a ggml model file.
func TestE2E(t *testing.T) {
	whisperModel := os.Getenv("DUBCUT_ITEST_WHISPER_MODEL")
	if whisperModel == "" {
		t.Skip("DUBCUT_ITEST_WHISPER_MODEL not set")
	}
	ttsModel := os.Getenv("DUBCUT_ITEST_TTS_MODEL")
	if ttsModel == "" {
		ttsModel = "tts_models/en/ljspeech/vits"
	}

	tmp := t.TempDir()
	in := filepath.Join(tmp, "input.mp4")

	// Generate speech audio via espeak-ng.
	wav := filepath.Join(tmp, "speech.wav")
	text := "Here is the key idea. Step one: do this. Step two: measure results. This is important."
	cmd := exec.Command("espeak-ng", "-w", wav, text)
	if b, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("espeak-ng failed: %v\n%s", err, string(b))
	}

	// Build a simple mp4 with audio.
	ff := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", "color=c=black:s=1280x720:d=15",
		"-i", wav,
		"-shortest",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		in,
	)
	if b, err := ff.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg fixture failed: %v\n%s", err, string(b))
	}

	out := filepath.Join(tmp, "dubbed.mp4")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	cfg := pipeline.Config{
		Video:        in,
		OutPath:      out,
		WhisperModel: whisperModel,
		TTSModel:     ttsModel,
		WhisperPath:  getenvDefault("DUBCUT_WHISPER_BIN", "whisper-cli"),
		TTSPath:      getenvDefault("DUBCUT_TTS_BIN", "tts"),
		TempDir:      filepath.Join(tmp, "ws"),
	}
	if err := os.MkdirAll(cfg.TempDir, 0o755); err != nil {
		t.Fatalf("mkdir ws base: %v", err)
	}

	if err := pipeline.Run(ctx, cfg); err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	if _, err := os.Stat(out); err != nil {
		t.Fatalf("missing output: %v", err)
	}

	// The workspace must be gone after the run.
	entries, err := os.ReadDir(cfg.TempDir)
	if err != nil {
		t.Fatalf("read ws base: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("workspace leaked: %v", entries)
	}

	// Video stream is stream-copied, so it hashes identically.
	inMD5, err := videoStreamMD5(in)
	if err != nil {
		t.Fatalf("hash input video: %v", err)
	}
	outMD5, err := videoStreamMD5(out)
	if err != nil {
		t.Fatalf("hash output video: %v", err)
	}
	if inMD5 != outMD5 {
		t.Fatalf("video stream changed: %s vs %s", inMD5, outMD5)
	}

	// Sanity: output container has a plausible duration.
	sec, err := probeDurationSeconds(out)
	if err != nil {
		t.Fatalf("probe output: %v", err)
	}
	if sec <= 0 || math.IsNaN(sec) {
		t.Fatalf("implausible output duration: %f", sec)
	}
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
