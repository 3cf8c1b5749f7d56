package domain

import (
	"fmt"
	"strings"
	"time"
)

// Segment represents a timed segment of transcribed text
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript represents the full transcription result. Segments is nil when
// the text came from a subtitle track: caption line boundaries are not
// reliable timing boundaries, so subtitle-derived transcripts are text only.
type Transcript struct {
	Text          string    `json:"text"`
	Segments      []Segment `json:"segments,omitempty"`
	Source        string    `json:"source"` // "subtitles" or "whisper"
	Language      string    `json:"language"`
	TranscribedAt time.Time `json:"transcribed_at"`
}

// HasTiming reports whether timed output formats (SRT, VTT) are available.
func (t *Transcript) HasTiming() bool {
	return len(t.Segments) > 0
}

// ToText returns plain text concatenation of all segments
func (t *Transcript) ToText() string {
	if t.Text != "" {
		return t.Text
	}

	var parts []string
	for _, seg := range t.Segments {
		parts = append(parts, strings.TrimSpace(seg.Text))
	}
	return strings.Join(parts, " ")
}

// ToSRT returns the transcript in SRT subtitle format
func (t *Transcript) ToSRT() string {
	var sb strings.Builder

	for i, seg := range t.Segments {
		// Sequence number
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		// Timestamps
		sb.WriteString(fmt.Sprintf("%s --> %s\n", FormatSRTTime(seg.Start), FormatSRTTime(seg.End)))
		// Text
		sb.WriteString(strings.TrimSpace(seg.Text))
		sb.WriteString("\n\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// ToVTT returns the transcript in WebVTT subtitle format
func (t *Transcript) ToVTT() string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")

	for _, seg := range t.Segments {
		sb.WriteString(fmt.Sprintf("%s --> %s\n", FormatVTTTime(seg.Start), FormatVTTTime(seg.End)))
		sb.WriteString(strings.TrimSpace(seg.Text))
		sb.WriteString("\n\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// FormatSRTTime converts seconds to SRT timestamp format (HH:MM:SS,mmm).
// Hours are not wrapped at 24.
func FormatSRTTime(seconds float64) string {
	return formatTimestamp(seconds, ",")
}

// FormatVTTTime converts seconds to WebVTT timestamp format (HH:MM:SS.mmm).
func FormatVTTTime(seconds float64) string {
	return formatTimestamp(seconds, ".")
}

func formatTimestamp(seconds float64, msSep string) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := int(seconds) % 60
	millis := int((seconds - float64(int(seconds))) * 1000)

	return fmt.Sprintf("%02d:%02d:%02d%s%03d", hours, minutes, secs, msSep, millis)
}
