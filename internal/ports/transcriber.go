package ports

import (
	"context"

	"github.com/vbell/mediagrab/internal/domain"
)

// TranscribeOpts configures transcription behavior
type TranscribeOpts struct {
	Model    string
	Language string // empty for auto-detect
}

// Transcriber handles speech-to-text conversion
type Transcriber interface {
	// Transcribe converts an audio/video file to a timed transcript.
	Transcribe(ctx context.Context, mediaPath string, opts TranscribeOpts) (*domain.Transcript, error)
}
