package ffmpeg

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recorder struct {
	calls [][]string
	// listContent captures the concat list file at Run time, before the
	// adapter removes it.
	listContent string
}

func (r *recorder) Run(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, append([]string{name}, args...))
	for i, a := range args {
		if a == "-i" && i+1 < len(args) && strings.HasSuffix(args[i+1], ".txt") {
			if b, err := os.ReadFile(args[i+1]); err == nil {
				r.listContent = string(b)
			}
		}
	}
	return nil
}

func (r *recorder) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	return []byte("12.5\n"), nil
}

func TestExtractAudioMono16k_Args(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	a := New("", "", rec)
	if err := a.ExtractAudioMono16k(context.Background(), "in.mp4", "out.wav"); err != nil {
		t.Fatalf("extract: %v", err)
	}
	got := strings.Join(rec.calls[0], " ")
	want := "ffmpeg -y -i in.mp4 -vn -acodec pcm_s16le -ar 16000 -ac 1 out.wav"
	if got != want {
		t.Fatalf("argv = %q, want %q", got, want)
	}
}

func TestConcatCopy_ListOrderAndCleanup(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	inputs := []string{
		filepath.Join(tmp, "segment_0000.wav"),
		filepath.Join(tmp, "segment_0001.wav"),
		filepath.Join(tmp, "segment_0002.wav"),
	}
	out := filepath.Join(tmp, "dub.wav")

	rec := &recorder{}
	a := New("ffmpeg", "ffprobe", rec)
	if err := a.ConcatCopy(context.Background(), inputs, out); err != nil {
		t.Fatalf("concat: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(rec.listContent), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 list entries, got %d:\n%s", len(lines), rec.listContent)
	}
	for i, in := range inputs {
		if !strings.Contains(lines[i], filepath.Base(in)) {
			t.Fatalf("list line %d = %q, want entry for %s", i, lines[i], in)
		}
	}

	argv := strings.Join(rec.calls[0], " ")
	for _, want := range []string{"-f concat", "-safe 0", "-c copy", out} {
		if !strings.Contains(argv, want) {
			t.Fatalf("argv %q missing %q", argv, want)
		}
	}

	if _, err := os.Stat(out + ".txt"); !os.IsNotExist(err) {
		t.Fatalf("expected list file removed, stat err=%v", err)
	}
}

func TestConcatCopy_NoInputs(t *testing.T) {
	t.Parallel()

	a := New("", "", &recorder{})
	if err := a.ConcatCopy(context.Background(), nil, "out.wav"); err == nil {
		t.Fatalf("expected error for empty input list")
	}
}

func TestConcatList_EscapesSingleQuotes(t *testing.T) {
	t.Parallel()

	got, err := concatList([]string{"/tmp/it's here.wav"})
	if err != nil {
		t.Fatalf("concatList: %v", err)
	}
	if !strings.Contains(got, `it'\''s here.wav`) {
		t.Fatalf("quote not escaped: %q", got)
	}
}

func TestRemuxCopyVideo_Args(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	a := New("", "", rec)
	if err := a.RemuxCopyVideo(context.Background(), "in.mp4", "dub.wav", "out.mp4"); err != nil {
		t.Fatalf("remux: %v", err)
	}
	got := strings.Join(rec.calls[0], " ")
	want := "ffmpeg -y -i in.mp4 -i dub.wav -c:v copy -map 0:v:0 -map 1:a:0 out.mp4"
	if got != want {
		t.Fatalf("argv = %q, want %q", got, want)
	}
}

func TestProbeDuration_Parses(t *testing.T) {
	t.Parallel()

	a := New("", "", &recorder{})
	d, err := a.ProbeDuration(context.Background(), "out.mp4")
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if d.Seconds() != 12.5 {
		t.Fatalf("duration = %v, want 12.5s", d)
	}
}
