package cli

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/vbell/mediagrab/internal/domain"
	"github.com/vbell/mediagrab/internal/ports"
)

type captureReporter struct {
	mu       sync.Mutex
	warnings []string
}

func (c *captureReporter) Status(string) {}

func (c *captureReporter) Warn(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, msg)
}

func timedTranscript() *domain.Transcript {
	return &domain.Transcript{
		Text: "hello world",
		Segments: []domain.Segment{
			{Start: 0, End: 2, Text: "hello world"},
		},
	}
}

func TestWriteTranscriptAllFormats(t *testing.T) {
	dir := t.TempDir()
	written, err := WriteTranscript(timedTranscript(), dir, "Talk", []string{"txt", "srt", "vtt"}, &captureReporter{})
	if err != nil {
		t.Fatalf("WriteTranscript: %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("wrote %d files, want 3", len(written))
	}

	srt, err := os.ReadFile(filepath.Join(dir, "Talk.srt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(srt), "00:00:00,000 --> 00:00:02,000") {
		t.Errorf("SRT content = %q", srt)
	}

	vtt, err := os.ReadFile(filepath.Join(dir, "Talk.vtt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(vtt), "WEBVTT") {
		t.Errorf("VTT content = %q", vtt)
	}
}

// Timed formats are skipped with a warning when the transcript came from
// subtitles and carries no segments.
func TestWriteTranscriptSkipsTimedFormatsWithoutSegments(t *testing.T) {
	dir := t.TempDir()
	rep := &captureReporter{}
	transcript := &domain.Transcript{Text: "prose only", Source: "subtitles"}

	written, err := WriteTranscript(transcript, dir, "Talk", []string{"txt", "srt", "vtt"}, rep)
	if err != nil {
		t.Fatalf("WriteTranscript: %v", err)
	}
	if len(written) != 1 || !strings.HasSuffix(written[0], "Talk.txt") {
		t.Errorf("written = %v, want only the txt file", written)
	}
	if len(rep.warnings) != 2 {
		t.Errorf("warnings = %v, want one per skipped format", rep.warnings)
	}
}

func TestWriteTranscriptUnknownFormat(t *testing.T) {
	_, err := WriteTranscript(timedTranscript(), t.TempDir(), "Talk", []string{"pdf"}, ports.NopReporter{})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestTranscriptBaseName(t *testing.T) {
	info := &domain.MediaInfo{Title: "My Talk: Part 1"}
	if got := transcriptBaseName("https://example.com/v", info); got != "My Talk_ Part 1" {
		t.Errorf("base name = %q", got)
	}

	if got := transcriptBaseName("/data/recording.mp3", nil); got != "recording" {
		t.Errorf("base name = %q", got)
	}
}
