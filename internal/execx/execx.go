// Package execx runs external tools for the pipeline adapters. Tool output
// is inherited by the process so the operator sees ffmpeg/yt-dlp/engine
// progress directly; a non-zero exit is surfaced as an error and is fatal to
// the run (no retries).
package execx

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Commander is what adapters depend on; tests substitute a recorder.
type Commander interface {
	Run(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Runner executes commands synchronously, logging each argv before it runs.
type Runner struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Runner {
	return &Runner{log: log}
}

// Run executes the command with stdout/stderr inherited.
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	r.logCmd(name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Output executes the command capturing stdout; stderr is still inherited so
// tool diagnostics stay visible.
func (r *Runner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.logCmd(name, args)
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out.Bytes(), nil
}

func (r *Runner) logCmd(name string, args []string) {
	if r.log == nil {
		return
	}
	r.log.Info("run", "cmd", name+" "+strings.Join(args, " "))
}
