package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/forPelevin/dubcut/internal/execx"
	"github.com/forPelevin/dubcut/internal/types"
)

type Adapter struct {
	bin   string
	model string
	run   execx.Commander
}

func New(binPath, modelPath string, run execx.Commander) *Adapter {
	return &Adapter{bin: binPath, model: modelPath, run: run}
}

// transcriptionJSON mirrors whisper.cpp's -oj output. Offsets are
// milliseconds.
type transcriptionJSON struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// Transcribe runs whisper.cpp once over the whole WAV and parses its JSON
// output. An empty language means auto-detection.
func (a *Adapter) Transcribe(ctx context.Context, wavPath, workDir, language string) (types.Transcript, error) {
	outPrefix := filepath.Join(workDir, "whisper")
	if err := a.run.Run(ctx, a.bin, transcribeArgs(a.model, wavPath, outPrefix, language)...); err != nil {
		return types.Transcript{}, fmt.Errorf("whisper.cpp: %w", err)
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return types.Transcript{}, fmt.Errorf("whisper.cpp: read output: %w", err)
	}

	var raw transcriptionJSON
	if err := json.Unmarshal(jb, &raw); err != nil {
		return types.Transcript{}, fmt.Errorf("whisper.cpp: parse output: %w", err)
	}

	tr := types.Transcript{Language: raw.Result.Language}
	for _, s := range raw.Transcription {
		// Whitespace-only segments stay in the transcript; the synthesis
		// stage decides what to do with them.
		tr.Segments = append(tr.Segments, types.Segment{
			Start: float64(s.Offsets.From) / 1000,
			End:   float64(s.Offsets.To) / 1000,
			Text:  strings.TrimSpace(s.Text),
		})
	}
	return tr, nil
}

func transcribeArgs(model, wavPath, outPrefix, language string) []string {
	if language == "" {
		language = "auto"
	}
	return []string{
		"-m", model,
		"-f", wavPath,
		"-l", language,
		"-oj",
		"-of", outPrefix,
	}
}
