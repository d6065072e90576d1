// Package config holds the optional TOML configuration file for tool
// locations and model defaults. Flags and environment variables override it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Tools locates the external binaries the pipeline drives.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
	YtDlp   string `toml:"yt_dlp"`
	Whisper string `toml:"whisper"`
	TTS     string `toml:"tts"`
}

// Models selects the default engine models.
type Models struct {
	// Whisper is a ggml model file path for whisper.cpp.
	Whisper string `toml:"whisper"`
	// TTS is a Coqui model name.
	TTS string `toml:"tts"`
}

type Config struct {
	Tools    Tools  `toml:"tools"`
	Models   Models `toml:"models"`
	LogLevel string `toml:"log_level"`
}

func Default() Config {
	return Config{
		Tools: Tools{
			FFmpeg:  "ffmpeg",
			FFprobe: "ffprobe",
			YtDlp:   "yt-dlp",
			Whisper: "whisper-cli",
			TTS:     "tts",
		},
		Models: Models{
			Whisper: "models/ggml-small.bin",
			TTS:     "tts_models/multilingual/multi-dataset/xtts_v2",
		},
		LogLevel: "info",
	}
}

// Load reads a TOML file over the defaults. An explicitly requested path
// must exist; the default path is optional.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultPath()
	}

	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func defaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "dubcut", "config.toml")
}
