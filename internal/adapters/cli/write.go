package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vbell/mediagrab/internal/domain"
	"github.com/vbell/mediagrab/internal/ports"
)

// transcriptBaseName derives an output file stem from the media title when
// one is known, otherwise from the input itself.
func transcriptBaseName(input string, info *domain.MediaInfo) string {
	if info != nil && info.Title != "" {
		return domain.SanitizeTitle(info.Title)
	}

	base := filepath.Base(input)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return domain.SanitizeTitle(base)
}

// WriteTranscript writes the transcript in each requested format and returns
// the paths written. Timed formats are skipped with a warning when the
// transcript carries no segment timing.
func WriteTranscript(t *domain.Transcript, dir, baseName string, formats []string, reporter ports.Reporter) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create output directory %s: %w", dir, err)
	}

	var written []string
	for _, f := range formats {
		var content, ext string
		switch strings.ToLower(f) {
		case "txt":
			content, ext = t.ToText(), ".txt"
		case "srt":
			if !t.HasTiming() {
				reporter.Warn("transcript has no timing information, skipping SRT output")
				continue
			}
			content, ext = t.ToSRT(), ".srt"
		case "vtt":
			if !t.HasTiming() {
				reporter.Warn("transcript has no timing information, skipping VTT output")
				continue
			}
			content, ext = t.ToVTT(), ".vtt"
		default:
			return written, fmt.Errorf("unknown transcript format %q (want txt, srt or vtt)", f)
		}

		path := filepath.Join(dir, baseName+ext)
		if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
			return written, fmt.Errorf("cannot write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
