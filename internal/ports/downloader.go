package ports

import (
	"context"

	"github.com/vbell/mediagrab/internal/domain"
	"github.com/vbell/mediagrab/internal/format"
)

// DownloadRequest describes one download handed to the extraction engine.
type DownloadRequest struct {
	URL         string
	Format      format.Resolved
	OutputDir   string
	Auth        domain.Auth
	ArchiveFile string // engine-side dedup file, "" for none
	IsPlaylist  bool
}

// AudioDownloadResult reports where extracted audio landed.
type AudioDownloadResult struct {
	Path string
	Info *domain.MediaInfo
}

// MediaInfoProvider resolves a URL to metadata without downloading.
type MediaInfoProvider interface {
	// Probe fetches metadata for a URL, including available subtitle tracks.
	Probe(ctx context.Context, url string, auth domain.Auth) (*domain.MediaInfo, error)

	// FetchSubtitle downloads one subtitle track and returns its raw text.
	FetchSubtitle(ctx context.Context, track domain.SubtitleTrack) (string, error)
}

// MediaDownloader downloads one URL to the output directory.
type MediaDownloader interface {
	// Download runs the extraction engine for a single request. A non-nil
	// error describes why this one item failed; it never reflects the state
	// of any other request.
	Download(ctx context.Context, req DownloadRequest) error

	// DownloadAudio fetches audio only, extracting to WAV when the
	// transcoder is available and keeping the native container otherwise.
	// The returned path is a temporary artifact the caller must remove.
	DownloadAudio(ctx context.Context, url string, destDir string, auth domain.Auth) (*AudioDownloadResult, error)
}
