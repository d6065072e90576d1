package ytdlp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recorder struct {
	calls     [][]string
	writeDest bool
}

func (r *recorder) Run(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, append([]string{name}, args...))
	if r.writeDest {
		dest := args[len(args)-2] // -o <dest> <url>
		return os.WriteFile(dest, []byte("video"), 0o644)
	}
	return nil
}

func (r *recorder) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	return nil, nil
}

func TestFetch_Args(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "input.mp4")
	rec := &recorder{writeDest: true}
	a := New("", rec)
	if err := a.Fetch(context.Background(), "https://example.com/v", dest); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	got := strings.Join(rec.calls[0], " ")
	want := "yt-dlp -f bestvideo+bestaudio --merge-output-format mp4 -o " + dest + " https://example.com/v"
	if got != want {
		t.Fatalf("argv = %q, want %q", got, want)
	}
}

func TestFetch_MissingFileAfterZeroExit(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "input.mp4")
	a := New("yt-dlp", &recorder{writeDest: false})
	err := a.Fetch(context.Background(), "https://example.com/v", dest)
	if err == nil {
		t.Fatalf("expected error when downloaded file is missing")
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Fatalf("unexpected error: %v", err)
	}
}
