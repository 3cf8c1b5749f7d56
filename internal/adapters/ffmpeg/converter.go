// Package ffmpeg wraps the ffmpeg and ffprobe binaries for local audio
// format conversion and metadata probing.
package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// convertTimeout bounds a single conversion or probe subprocess.
const convertTimeout = 120 * time.Second

// AudioFormat describes one supported conversion target.
type AudioFormat struct {
	Name           string
	Description    string
	DefaultBitrate int // kbps
	Codec          string
	Lossless       bool
}

// SupportedFormats maps format keys to their conversion parameters.
var SupportedFormats = map[string]AudioFormat{
	"mp3":  {Name: "MP3", Description: "MPEG Audio Layer 3 (Lossy)", DefaultBitrate: 192, Codec: "libmp3lame"},
	"aac":  {Name: "AAC", Description: "Advanced Audio Coding (Lossy)", DefaultBitrate: 192, Codec: "aac"},
	"m4a":  {Name: "M4A", Description: "MPEG-4 Audio (AAC in M4A container)", DefaultBitrate: 192, Codec: "aac"},
	"ogg":  {Name: "OGG", Description: "Ogg Vorbis (Lossy)", DefaultBitrate: 192, Codec: "libvorbis"},
	"wav":  {Name: "WAV", Description: "Waveform Audio (Lossless)", DefaultBitrate: 1411, Codec: "pcm_s16le", Lossless: true},
	"flac": {Name: "FLAC", Description: "Free Lossless Audio Codec", DefaultBitrate: 1000, Codec: "flac", Lossless: true},
}

// Metadata is the subset of ffprobe output shown before conversion.
type Metadata struct {
	DurationSeconds float64
	BitrateKbps     int
	Codec           string
	SizeBytes       int64
}

// Converter runs ffmpeg/ffprobe subprocesses.
type Converter struct {
	ffmpegPath  string
	ffprobePath string
}

// NewConverter creates a converter, resolving binaries from PATH.
func NewConverter() *Converter {
	return &Converter{}
}

func ffmpegBinaryName() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}

func ffprobeBinaryName() string {
	if runtime.GOOS == "windows" {
		return "ffprobe.exe"
	}
	return "ffprobe"
}

// IsAvailable checks if ffmpeg is installed.
func (c *Converter) IsAvailable() bool {
	return c.binPath() != ""
}

func (c *Converter) binPath() string {
	if c.ffmpegPath == "" {
		if path, err := exec.LookPath(ffmpegBinaryName()); err == nil {
			c.ffmpegPath = path
		}
	}
	return c.ffmpegPath
}

func (c *Converter) probePath() string {
	if c.ffprobePath == "" {
		if path, err := exec.LookPath(ffprobeBinaryName()); err == nil {
			c.ffprobePath = path
		}
	}
	return c.ffprobePath
}

// Convert transcodes inputPath to the named format, writing outputPath.
// bitrateKbps <= 0 selects the format's default; lossless targets ignore it.
func (c *Converter) Convert(ctx context.Context, inputPath, outputPath, formatKey string, bitrateKbps int) error {
	bin := c.binPath()
	if bin == "" {
		return fmt.Errorf("ffmpeg not found on PATH")
	}

	format, ok := SupportedFormats[strings.ToLower(formatKey)]
	if !ok {
		return fmt.Errorf("unsupported output format %q", formatKey)
	}
	if bitrateKbps <= 0 {
		bitrateKbps = format.DefaultBitrate
	}

	args := []string{"-i", inputPath, "-c:a", format.Codec}
	if !format.Lossless {
		args = append(args, "-b:a", fmt.Sprintf("%dk", bitrateKbps))
	}
	args = append(args, "-y", outputPath)

	ctx, cancel := context.WithTimeout(ctx, convertTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("conversion timed out after %s", convertTimeout)
		}
		return fmt.Errorf("conversion failed: %s", lastNonEmptyLine(string(output)))
	}
	return nil
}

// ProbeMetadata reads duration, bitrate and codec via ffprobe. A probe
// failure is non-fatal to conversion; callers degrade to placeholders.
func (c *Converter) ProbeMetadata(ctx context.Context, path string) (*Metadata, error) {
	bin := c.probePath()
	if bin == "" {
		return nil, fmt.Errorf("ffprobe not found on PATH")
	}

	ctx, cancel := context.WithTimeout(ctx, convertTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe struct {
		Format struct {
			Duration string `json:"duration"`
			BitRate  string `json:"bit_rate"`
			Size     string `json:"size"`
		} `json:"format"`
		Streams []struct {
			CodecType string `json:"codec_type"`
			CodecName string `json:"codec_name"`
		} `json:"streams"`
	}
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	meta := &Metadata{}
	meta.DurationSeconds, _ = strconv.ParseFloat(probe.Format.Duration, 64)
	if bps, err := strconv.Atoi(probe.Format.BitRate); err == nil {
		meta.BitrateKbps = bps / 1000
	}
	meta.SizeBytes, _ = strconv.ParseInt(probe.Format.Size, 10, 64)
	for _, stream := range probe.Streams {
		if stream.CodecType == "audio" {
			meta.Codec = stream.CodecName
			break
		}
	}
	return meta, nil
}

// EstimateSize predicts output bytes: (kbps * 1000 * seconds) / 8.
func EstimateSize(durationSeconds float64, bitrateKbps int) int64 {
	if durationSeconds <= 0 || bitrateKbps <= 0 {
		return 0
	}
	return int64(float64(bitrateKbps) * 1000 * durationSeconds / 8)
}

// QualityDescription labels a codec/bitrate combination for display.
func QualityDescription(codec string, bitrateKbps int) string {
	if bitrateKbps == 0 {
		return "Unknown quality"
	}

	codecLower := strings.ToLower(codec)
	for _, lossless := range []string{"flac", "wav", "alac", "pcm"} {
		if strings.Contains(codecLower, lossless) {
			return "Lossless (Original Quality)"
		}
	}

	for _, lossy := range []string{"mp3", "aac", "vorbis", "opus"} {
		if strings.Contains(codecLower, lossy) {
			switch {
			case bitrateKbps >= 320:
				return "Very High (320kbps)"
			case bitrateKbps >= 256:
				return "High (256kbps)"
			case bitrateKbps >= 192:
				return "Good (192kbps)"
			case bitrateKbps >= 128:
				return "Standard (128kbps)"
			default:
				return fmt.Sprintf("Low (%dkbps)", bitrateKbps)
			}
		}
	}

	return fmt.Sprintf("%dkbps", bitrateKbps)
}

func lastNonEmptyLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "unknown error"
}
