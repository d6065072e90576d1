package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/forPelevin/dubcut/internal/config"
	"github.com/forPelevin/dubcut/internal/logging"
	"github.com/forPelevin/dubcut/internal/pipeline"
)

func run(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfgFile, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logLevel, _ := cmd.Flags().GetString("log-level")
	if logLevel == "" {
		logLevel = cfgFile.LogLevel
	}
	logJSON, _ := cmd.Flags().GetBool("log-json")
	log := logging.New(logLevel, logJSON)

	video, _ := cmd.Flags().GetString("video")
	url, _ := cmd.Flags().GetString("url")
	out, _ := cmd.Flags().GetString("out")
	language, _ := cmd.Flags().GetString("language")
	voice, _ := cmd.Flags().GetString("voice")
	speakerWAV, _ := cmd.Flags().GetString("speaker-wav")

	whisperModel, _ := cmd.Flags().GetString("whisper-model")
	if whisperModel == "" {
		whisperModel = cfgFile.Models.Whisper
	}
	ttsModel, _ := cmd.Flags().GetString("tts-model")
	if ttsModel == "" {
		ttsModel = cfgFile.Models.TTS
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		Video:      video,
		URL:        url,
		OutPath:    out,
		Language:   language,
		Voice:      voice,
		SpeakerWAV: speakerWAV,

		WhisperModel: whisperModel,
		TTSModel:     ttsModel,

		FFmpegPath:  getenvDefault("DUBCUT_FFMPEG", cfgFile.Tools.FFmpeg),
		FFprobePath: getenvDefault("DUBCUT_FFPROBE", cfgFile.Tools.FFprobe),
		YtDlpPath:   getenvDefault("DUBCUT_YTDLP", cfgFile.Tools.YtDlp),
		WhisperPath: getenvDefault("DUBCUT_WHISPER_BIN", cfgFile.Tools.Whisper),
		TTSPath:     getenvDefault("DUBCUT_TTS_BIN", cfgFile.Tools.TTS),

		Log:      log,
		Progress: os.Stderr,
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.Run(ctx, cfg)
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
