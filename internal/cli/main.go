package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "dubcut",
		Short:        "Replace a video's spoken audio with synthesized speech",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().String("video", "", "Path to a local video file")
	root.Flags().String("url", "", "Video URL to download and dub")
	root.Flags().String("out", "dubbed_video.mp4", "Output video path")
	root.Flags().String("language", "", "Language code for transcription and synthesis (default: auto-detect)")
	root.Flags().String("whisper-model", "", "whisper.cpp ggml model path")
	root.Flags().String("tts-model", "", "Coqui TTS model name")
	root.Flags().String("voice", "", "Speaker name for multi-speaker models")
	root.Flags().String("speaker-wav", "", "Reference audio for voice cloning")
	root.Flags().String("config", "", "TOML config file path")
	root.Flags().String("log-level", "", "Log level: debug, info, warn, error")
	root.Flags().Bool("log-json", false, "Force JSON log output")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
