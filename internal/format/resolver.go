// Package format maps symbolic download-quality intents to concrete
// extraction-engine format specifications, degrading gracefully when the
// transcoder is not installed.
package format

import (
	"github.com/vbell/mediagrab/internal/domain"
)

// Intent is a symbolic request for download quality/container.
type Intent string

const (
	IntentBest      Intent = "best"
	IntentBestVideo Intent = "bestvideo"
	IntentBestAudio Intent = "bestaudio"
	IntentHigh      Intent = "high"
	IntentMP3       Intent = "mp3"
	IntentMP4       Intent = "mp4"
	// Any other value is treated as an opaque engine format ID and passed
	// through unchanged.
)

// MP3Quality is the fixed bitrate handed to the audio extraction
// post-processor, in kbps.
const MP3Quality = "192"

// PostProcessing directs the engine to run the transcoder after download.
type PostProcessing struct {
	ExtractAudio bool
	AudioCodec   string // "mp3"
	AudioQuality string // kbps
}

// Resolved is the engine-ready outcome of intent resolution.
type Resolved struct {
	FormatString string
	Post         *PostProcessing
	MergeFormat  string // container to merge separate streams into, "" for none
	Warnings     []string
}

// RequiresTranscoder reports whether applying this resolution would invoke
// the transcoding engine.
func (r Resolved) RequiresTranscoder() bool {
	return r.Post != nil || r.MergeFormat != ""
}

// Resolve maps an intent plus the capability set to a concrete format
// specification. It is total: every intent resolves without error, and when
// caps.Transcoder is false the result never requests post-processing or
// stream merging.
func Resolve(intent Intent, caps domain.Capabilities) Resolved {
	switch intent {
	case IntentMP3:
		if !caps.Transcoder {
			return Resolved{
				FormatString: "bestaudio/best",
				Warnings: []string{
					"ffmpeg is required for MP3 conversion; downloading best audio in its original format instead",
				},
			}
		}
		return Resolved{
			FormatString: "bestaudio/best",
			Post: &PostProcessing{
				ExtractAudio: true,
				AudioCodec:   "mp3",
				AudioQuality: MP3Quality,
			},
		}

	case IntentMP4:
		if !caps.Transcoder {
			return Resolved{
				FormatString: "best[ext=mp4]/best",
				Warnings: []string{
					"ffmpeg not found; best MP4-tagged format will be used without remuxing",
				},
			}
		}
		return Resolved{
			FormatString: "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best",
		}

	case IntentHigh:
		if !caps.Transcoder {
			return Resolved{
				FormatString: "best",
				Warnings: []string{
					"ffmpeg is required to merge separate video and audio streams; falling back to best combined format",
				},
			}
		}
		return Resolved{
			FormatString: "bestvideo+bestaudio/best",
			MergeFormat:  "mp4",
		}

	default:
		// best, bestvideo, bestaudio and opaque format IDs pass through.
		return Resolved{FormatString: string(intent)}
	}
}
