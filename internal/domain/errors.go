package domain

import "errors"

var (
	// Media source errors
	ErrUnsupportedURL   = errors.New("URL is not supported by the extraction engine")
	ErrMediaUnavailable = errors.New("media is private or unavailable")
	ErrNetworkFailure   = errors.New("network failure")

	// Missing external engines, checked independently so callers can
	// name the exact dependency in their error message
	ErrExtractorNotFound    = errors.New("yt-dlp not found")
	ErrTranscoderNotFound   = errors.New("ffmpeg not found")
	ErrSpeechEngineNotFound = errors.New("whisper not found")

	// Transcription errors
	ErrNoSubtitles         = errors.New("no subtitle tracks available")
	ErrTranscriptionFailed = errors.New("transcription failed")
)
