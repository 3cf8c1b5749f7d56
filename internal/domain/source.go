package domain

import (
	"os"
	"path/filepath"
	"strings"
)

// SourceKind tags a TranscriptionSource as a local file or a remote URL.
type SourceKind int

const (
	SourceLocalFile SourceKind = iota
	SourceRemoteURL
)

// TranscriptionSource is the input to the transcription pipeline. It is
// classified once at workflow entry and never changes during a run.
type TranscriptionSource struct {
	Kind SourceKind
	Path string // set when Kind == SourceLocalFile
	URL  string // set when Kind == SourceRemoteURL
}

// Extensions accepted as local media input for transcription.
var mediaExtensions = map[string]bool{
	".mp3":  true,
	".mp4":  true,
	".m4a":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
	".webm": true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
}

// ClassifySource decides whether input names a local media file or a remote
// URL. A local file must exist and carry a known media extension; anything
// else is treated as a URL and left to the extraction engine to judge.
func ClassifySource(input string) TranscriptionSource {
	input = strings.TrimSpace(input)

	ext := strings.ToLower(filepath.Ext(input))
	if mediaExtensions[ext] {
		if info, err := os.Stat(input); err == nil && !info.IsDir() {
			return TranscriptionSource{Kind: SourceLocalFile, Path: input}
		}
	}

	return TranscriptionSource{Kind: SourceRemoteURL, URL: input}
}
