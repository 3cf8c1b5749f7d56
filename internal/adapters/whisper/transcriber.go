// Package whisper wraps a whisper.cpp binary, the tool's speech-to-text
// engine.
package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/vbell/mediagrab/internal/config"
	"github.com/vbell/mediagrab/internal/domain"
	"github.com/vbell/mediagrab/internal/ports"
)

// Transcriber implements ports.Transcriber using whisper.cpp
type Transcriber struct {
	modelsDir string
	binPath   string
}

// NewTranscriber creates a new Whisper transcriber
func NewTranscriber(modelsDir string) *Transcriber {
	if modelsDir == "" {
		modelsDir = config.ModelsDir()
	}
	return &Transcriber{modelsDir: modelsDir}
}

func (t *Transcriber) modelPath(name string) string {
	return filepath.Join(t.modelsDir, fmt.Sprintf("ggml-%s.bin", name))
}

// IsModelDownloaded checks if a model file is available locally.
func (t *Transcriber) IsModelDownloaded(model string) bool {
	_, err := os.Stat(t.modelPath(model))
	return err == nil
}

// IsAvailable checks whether a whisper.cpp binary can be found.
func (t *Transcriber) IsAvailable() bool {
	return t.findWhisperBinary() != ""
}

// Transcribe runs whisper.cpp on a local media file and parses its JSON
// output into a timed transcript.
func (t *Transcriber) Transcribe(ctx context.Context, mediaPath string, opts ports.TranscribeOpts) (*domain.Transcript, error) {
	model := opts.Model
	if model == "" {
		model = "small"
	}

	if !t.IsModelDownloaded(model) {
		return nil, fmt.Errorf("whisper model %q not found in %s", model, t.modelsDir)
	}

	whisperBin := t.findWhisperBinary()
	if whisperBin == "" {
		return nil, domain.ErrSpeechEngineNotFound
	}

	// Create temp file for output
	tmpDir := os.TempDir()
	outputBase := filepath.Join(tmpDir, fmt.Sprintf("mediagrab_%d", time.Now().UnixNano()))

	args := []string{
		"-m", t.modelPath(model),
		"-f", mediaPath,
		"-of", outputBase,
		"-oj", // JSON output
	}

	if opts.Language != "" && opts.Language != "auto" {
		args = append(args, "-l", opts.Language)
	}

	cmd := exec.CommandContext(ctx, whisperBin, args...)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	jsonPath := outputBase + ".json"
	defer os.Remove(jsonPath)

	return t.parseWhisperJSON(jsonPath, opts.Language)
}

func (t *Transcriber) findWhisperBinary() string {
	if t.binPath != "" {
		return t.binPath
	}

	names := []string{"whisper", "whisper-cpp", "main"}
	if runtime.GOOS == "windows" {
		names = []string{"whisper.exe", "whisper-cpp.exe", "main.exe"}
	}

	// Check bundled location
	for _, name := range names {
		bundled := filepath.Join(config.BinDir(), name)
		if _, err := os.Stat(bundled); err == nil {
			t.binPath = bundled
			return bundled
		}
	}

	// Check PATH
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			t.binPath = path
			return path
		}
	}

	return ""
}

func (t *Transcriber) parseWhisperJSON(path string, language string) (*domain.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var output struct {
		Transcription []struct {
			Timestamps struct {
				From string `json:"from"`
				To   string `json:"to"`
			} `json:"timestamps"`
			Text string `json:"text"`
		} `json:"transcription"`
	}

	if err := json.Unmarshal(data, &output); err != nil {
		return nil, err
	}

	var segments []domain.Segment
	var fullText strings.Builder

	for _, item := range output.Transcription {
		start := parseTimestamp(item.Timestamps.From)
		end := parseTimestamp(item.Timestamps.To)
		text := strings.TrimSpace(item.Text)

		segments = append(segments, domain.Segment{
			Start: start,
			End:   end,
			Text:  text,
		})

		if fullText.Len() > 0 {
			fullText.WriteString(" ")
		}
		fullText.WriteString(text)
	}

	if language == "" {
		language = "auto"
	}

	return &domain.Transcript{
		Text:          fullText.String(),
		Segments:      segments,
		Source:        "whisper",
		Language:      language,
		TranscribedAt: time.Now(),
	}, nil
}

var timestampRegex = regexp.MustCompile(`(\d+):(\d+):(\d+)[,.](\d+)`)

func parseTimestamp(ts string) float64 {
	matches := timestampRegex.FindStringSubmatch(ts)
	if len(matches) != 5 {
		return 0
	}

	hours, _ := strconv.Atoi(matches[1])
	minutes, _ := strconv.Atoi(matches[2])
	seconds, _ := strconv.Atoi(matches[3])
	millis, _ := strconv.Atoi(matches[4])

	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(millis)/1000
}

// Ensure Transcriber implements interface
var _ ports.Transcriber = (*Transcriber)(nil)
