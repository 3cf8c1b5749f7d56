package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vbell/mediagrab/internal/domain"
	"github.com/vbell/mediagrab/internal/ports"
	"github.com/vbell/mediagrab/internal/subtitle"
)

// PipelineState enumerates the transcription workflow's states so branch
// coverage is explicit rather than buried in nested conditionals.
type PipelineState int

const (
	StateStart PipelineState = iota
	StateTrySubtitles
	StateSubtitlesFound
	StateNeedsEngine
	StateDone
	StateFailed
)

func (s PipelineState) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateTrySubtitles:
		return "try-subtitles"
	case StateSubtitlesFound:
		return "subtitles-found"
	case StateNeedsEngine:
		return "needs-engine"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TranscribeOptions configures one pipeline run.
type TranscribeOptions struct {
	Language string // subtitle language prefix and engine language hint
	Model    string
	Auth     domain.Auth

	// RequireSubtitles disables the speech-to-text fallback entirely: without
	// a fetchable subtitle track the run fails.
	RequireSubtitles bool

	// UseSubtitles decides between found subtitles (true) and re-transcribing
	// with the engine (false). Only consulted when both paths are viable;
	// nil means always use subtitles.
	UseSubtitles func(track domain.SubtitleTrack) bool
}

// TranscribeResult is the pipeline's uniform output.
type TranscribeResult struct {
	Transcript *domain.Transcript
	Info       *domain.MediaInfo // nil for local files
	FinalState PipelineState
}

// TranscribeService runs the two-path transcription workflow: subtitle
// extraction first, speech-to-text fallback.
type TranscribeService struct {
	provider    ports.MediaInfoProvider
	downloader  ports.MediaDownloader
	transcriber ports.Transcriber
	caps        domain.Capabilities
	reporter    ports.Reporter
	tempDir     string
}

// NewTranscribeService creates a transcription pipeline.
func NewTranscribeService(
	provider ports.MediaInfoProvider,
	downloader ports.MediaDownloader,
	transcriber ports.Transcriber,
	caps domain.Capabilities,
	reporter ports.Reporter,
) *TranscribeService {
	return &TranscribeService{
		provider:    provider,
		downloader:  downloader,
		transcriber: transcriber,
		caps:        caps,
		reporter:    reporter,
		tempDir:     os.TempDir(),
	}
}

// Transcribe classifies the input and walks the pipeline to a terminal state.
func (s *TranscribeService) Transcribe(ctx context.Context, input string, opts TranscribeOptions) (*TranscribeResult, error) {
	source := domain.ClassifySource(input)

	if source.Kind == domain.SourceLocalFile {
		// A bare file has no independently fetchable subtitle track.
		if opts.RequireSubtitles {
			return nil, fmt.Errorf("local file %s: %w", source.Path, domain.ErrNoSubtitles)
		}
		return s.runEngine(ctx, source.Path, nil, opts)
	}

	return s.transcribeURL(ctx, source.URL, opts)
}

func (s *TranscribeService) transcribeURL(ctx context.Context, url string, opts TranscribeOptions) (*TranscribeResult, error) {
	state := StateStart

	s.reporter.Status("fetching media info")
	info, err := s.provider.Probe(ctx, url, opts.Auth)
	if err != nil {
		return nil, fmt.Errorf("%s: could not resolve %s: %w", state, url, err)
	}

	state = StateTrySubtitles
	track, found := pickSubtitleTrack(info.Subtitles, opts.Language)
	if !found && opts.RequireSubtitles {
		return nil, fmt.Errorf("%s: %w", state, domain.ErrNoSubtitles)
	}
	if found {
		state = StateSubtitlesFound
		// With the engine also available the caller picks; without it,
		// subtitles are used unconditionally.
		useSubs := true
		if !opts.RequireSubtitles && s.caps.SpeechToText && opts.UseSubtitles != nil {
			useSubs = opts.UseSubtitles(track)
		}

		if useSubs {
			raw, err := s.provider.FetchSubtitle(ctx, track)
			if err == nil {
				kind := "manual"
				if track.Auto {
					kind = "auto-generated"
				}
				s.reporter.Status(fmt.Sprintf("using %s %s subtitles (%s)", kind, track.Language, track.Format))
				return &TranscribeResult{
					Transcript: &domain.Transcript{
						Text:          subtitle.Normalize(raw),
						Source:        "subtitles",
						Language:      track.Language,
						TranscribedAt: time.Now(),
					},
					Info:       info,
					FinalState: StateDone,
				}, nil
			}
			if opts.RequireSubtitles {
				return nil, fmt.Errorf("%s: subtitle fetch failed: %w", state, err)
			}
			// A fetch error is not terminal; fall through to the engine.
			s.reporter.Warn(fmt.Sprintf("subtitle fetch failed, falling back to transcription: %v", err))
		}
	}

	// Download audio, transcribe, clean up the artifact on every exit path.
	state = StateNeedsEngine
	if err := s.checkEngines(); err != nil {
		return nil, fmt.Errorf("%s: %w", state, err)
	}

	s.reporter.Status("downloading audio")
	destDir := filepath.Join(s.tempDir, "mediagrab-"+uuid.NewString())
	audio, err := s.downloader.DownloadAudio(ctx, url, destDir, opts.Auth)
	if err != nil {
		return nil, fmt.Errorf("%s: audio download failed: %w", state, err)
	}
	defer os.RemoveAll(destDir)

	return s.runEngine(ctx, audio.Path, info, opts)
}

// runEngine invokes the speech-to-text engine on a local media path.
func (s *TranscribeService) runEngine(ctx context.Context, path string, info *domain.MediaInfo, opts TranscribeOptions) (*TranscribeResult, error) {
	if err := s.checkEngines(); err != nil {
		return nil, err
	}

	s.reporter.Status("transcribing with speech-to-text engine")
	transcript, err := s.transcriber.Transcribe(ctx, path, ports.TranscribeOpts{
		Model:    opts.Model,
		Language: opts.Language,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTranscriptionFailed, err)
	}

	transcript.Source = "whisper"
	return &TranscribeResult{
		Transcript: transcript,
		Info:       info,
		FinalState: StateDone,
	}, nil
}

// checkEngines verifies both engine preconditions, naming the missing one.
func (s *TranscribeService) checkEngines() error {
	if !s.caps.SpeechToText {
		return domain.ErrSpeechEngineNotFound
	}
	if !s.caps.Transcoder {
		return domain.ErrTranscoderNotFound
	}
	return nil
}

// pickSubtitleTrack chooses the best track for a language prefix. Manual
// captions beat auto-generated ones, and timing-line formats (vtt, srt) beat
// everything else; both are deliberate quality tie-breaks.
func pickSubtitleTrack(tracks []domain.SubtitleTrack, language string) (domain.SubtitleTrack, bool) {
	if language == "" {
		language = "en"
	}

	var candidates []domain.SubtitleTrack
	for _, t := range tracks {
		if strings.HasPrefix(strings.ToLower(t.Language), strings.ToLower(language)) {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return domain.SubtitleTrack{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Auto != candidates[j].Auto {
			return !candidates[i].Auto
		}
		return formatRank(candidates[i].Format) < formatRank(candidates[j].Format)
	})
	return candidates[0], true
}

func formatRank(format string) int {
	switch strings.ToLower(format) {
	case "vtt":
		return 0
	case "srt":
		return 1
	default:
		return 2
	}
}
