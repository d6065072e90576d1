// Package coquitts drives the Coqui `tts` CLI: one process invocation per
// synthesized segment, plus a roster query for multi-speaker models.
package coquitts

import (
	"context"
	"fmt"
	"strings"

	"github.com/forPelevin/dubcut/internal/execx"
	"github.com/forPelevin/dubcut/internal/ports"
)

type Adapter struct {
	bin   string
	model string
	run   execx.Commander
}

func New(binPath, model string, run execx.Commander) *Adapter {
	if binPath == "" {
		binPath = "tts"
	}
	return &Adapter{bin: binPath, model: model, run: run}
}

// Voices returns the model's speaker roster. Single-speaker models reject
// --list_speaker_idxs, which is not an error: they simply have no roster.
func (a *Adapter) Voices(ctx context.Context) ([]string, error) {
	out, err := a.run.Output(ctx, a.bin, "--model_name", a.model, "--list_speaker_idxs")
	if err != nil {
		return nil, nil
	}
	return parseRoster(out), nil
}

func (a *Adapter) Synthesize(ctx context.Context, req ports.SpeechRequest) error {
	if err := a.run.Run(ctx, a.bin, synthesizeArgs(a.model, req)...); err != nil {
		return fmt.Errorf("tts: %w", err)
	}
	return nil
}

func synthesizeArgs(model string, req ports.SpeechRequest) []string {
	args := []string{
		"--text", req.Text,
		"--model_name", model,
		"--out_path", req.OutPath,
	}
	if req.Voice != "" {
		args = append(args, "--speaker_idx", req.Voice)
	}
	if req.Language != "" {
		args = append(args, "--language_idx", req.Language)
	}
	if req.SpeakerWAV != "" {
		args = append(args, "--speaker_wav", req.SpeakerWAV)
	}
	return args
}

// parseRoster extracts speaker names from the CLI's speaker-index dump,
// which prints a Python-style dict like {'Ana Florence': 0, 'Badr Odhiambo': 1}.
// Declaration order in the dump is the roster order.
func parseRoster(out []byte) []string {
	s := string(out)
	open := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if open < 0 || end <= open {
		return nil
	}
	var roster []string
	for _, entry := range strings.Split(s[open+1:end], ",") {
		name, _, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		name = strings.Trim(strings.TrimSpace(name), `'"`)
		if name != "" {
			roster = append(roster, name)
		}
	}
	return roster
}
