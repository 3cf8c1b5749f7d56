// Package ytdlp wraps the yt-dlp binary, the tool's media extraction engine.
package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/vbell/mediagrab/internal/config"
	"github.com/vbell/mediagrab/internal/domain"
	"github.com/vbell/mediagrab/internal/ports"
)

// probeTimeout bounds metadata probes so a hung engine process fails one
// item instead of stalling the batch.
const probeTimeout = 120 * time.Second

// Client runs yt-dlp as a subprocess.
type Client struct {
	binPath    string
	transcoder bool // whether ffmpeg is available for audio extraction
}

// NewClient creates a yt-dlp client. transcoderAvailable controls whether
// audio downloads extract to WAV or keep the native container.
func NewClient(transcoderAvailable bool) *Client {
	return &Client{transcoder: transcoderAvailable}
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "yt-dlp.exe"
	}
	return "yt-dlp"
}

func (c *Client) findBinary() string {
	// Check bundled location first
	bundled := filepath.Join(config.BinDir(), binaryName())
	if _, err := os.Stat(bundled); err == nil {
		return bundled
	}

	// Check system PATH
	if path, err := exec.LookPath(binaryName()); err == nil {
		return path
	}

	return ""
}

// BinaryPath returns the resolved yt-dlp path, or "" when not installed.
func (c *Client) BinaryPath() string {
	if c.binPath != "" {
		return c.binPath
	}
	c.binPath = c.findBinary()
	return c.binPath
}

// IsAvailable checks if yt-dlp is installed and ready.
func (c *Client) IsAvailable() bool {
	return c.BinaryPath() != ""
}

// probeInfo mirrors the subset of yt-dlp's JSON output we consume.
type probeInfo struct {
	Type       string  `json:"_type"`
	Title      string  `json:"title"`
	Uploader   string  `json:"uploader"`
	Channel    string  `json:"channel"`
	Duration   float64 `json:"duration"`
	ViewCount  int64   `json:"view_count"`
	UploadDate string  `json:"upload_date"`
	Entries    []struct {
		ID string `json:"id"`
	} `json:"entries"`
	Subtitles         map[string][]subtitleInfo `json:"subtitles"`
	AutomaticCaptions map[string][]subtitleInfo `json:"automatic_captions"`
}

type subtitleInfo struct {
	Ext string `json:"ext"`
	URL string `json:"url"`
}

// Probe fetches metadata for a URL without downloading.
func (c *Client) Probe(ctx context.Context, url string, auth domain.Auth) (*domain.MediaInfo, error) {
	binPath := c.BinaryPath()
	if binPath == "" {
		return nil, domain.ErrExtractorNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	args := []string{"--no-warnings", "--flat-playlist", "-J"}
	args = appendAuthArgs(args, auth)
	args = append(args, url)

	cmd := exec.CommandContext(ctx, binPath, args...)
	output, err := cmd.Output()
	if err != nil {
		return nil, classifyExecError(err, "probe failed")
	}

	var info probeInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	uploader := info.Uploader
	if uploader == "" {
		uploader = info.Channel
	}

	media := &domain.MediaInfo{
		Title:           info.Title,
		Uploader:        uploader,
		DurationSeconds: info.Duration,
		ViewCount:       info.ViewCount,
		UploadDate:      info.UploadDate,
		IsPlaylist:      info.Type == "playlist" || info.Type == "multi_video",
		EntryCount:      len(info.Entries),
		FetchedAt:       time.Now(),
	}
	media.Subtitles = append(media.Subtitles, collectTracks(info.Subtitles, false)...)
	media.Subtitles = append(media.Subtitles, collectTracks(info.AutomaticCaptions, true)...)

	return media, nil
}

func collectTracks(raw map[string][]subtitleInfo, auto bool) []domain.SubtitleTrack {
	var tracks []domain.SubtitleTrack
	for lang, variants := range raw {
		for _, v := range variants {
			if v.URL == "" {
				continue
			}
			tracks = append(tracks, domain.SubtitleTrack{
				Language: lang,
				Format:   v.Ext,
				URL:      v.URL,
				Auto:     auto,
			})
		}
	}
	return tracks
}

// Download runs the engine for a single request. The output template embeds
// the media ID so concurrently-downloaded items can never collide on a path
// even when their titles match.
func (c *Client) Download(ctx context.Context, req ports.DownloadRequest) error {
	binPath := c.BinaryPath()
	if binPath == "" {
		return domain.ErrExtractorNotFound
	}

	if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	template := filepath.Join(req.OutputDir, "%(title)s [%(id)s].%(ext)s")
	if req.IsPlaylist {
		template = filepath.Join(req.OutputDir, "%(playlist_index)03d - %(title)s [%(id)s].%(ext)s")
	}

	args := []string{
		"--no-warnings",
		"-f", req.Format.FormatString,
		"-o", template,
	}
	if req.IsPlaylist {
		args = append(args, "--ignore-errors")
	}
	if post := req.Format.Post; post != nil && post.ExtractAudio {
		args = append(args,
			"--extract-audio",
			"--audio-format", post.AudioCodec,
			"--audio-quality", post.AudioQuality+"K",
		)
	}
	if req.Format.MergeFormat != "" {
		args = append(args, "--merge-output-format", req.Format.MergeFormat)
	}
	if req.ArchiveFile != "" {
		args = append(args, "--download-archive", req.ArchiveFile)
	}
	args = appendAuthArgs(args, req.Auth)
	args = append(args, req.URL)

	cmd := exec.CommandContext(ctx, binPath, args...)
	if _, err := cmd.Output(); err != nil {
		return classifyExecError(err, "download failed")
	}
	return nil
}

// DownloadAudio fetches audio only into destDir, extracting to WAV when the
// transcoder is available. The caller owns destDir and removes it when done.
func (c *Client) DownloadAudio(ctx context.Context, url string, destDir string, auth domain.Auth) (*ports.AudioDownloadResult, error) {
	binPath := c.BinaryPath()
	if binPath == "" {
		return nil, domain.ErrExtractorNotFound
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	args := []string{
		"--no-warnings",
		"-f", "bestaudio/best",
		"-o", filepath.Join(destDir, "audio.%(ext)s"),
	}
	if c.transcoder {
		args = append(args, "--extract-audio", "--audio-format", "wav")
	}
	args = appendAuthArgs(args, auth)
	args = append(args, url)

	cmd := exec.CommandContext(ctx, binPath, args...)
	if _, err := cmd.Output(); err != nil {
		return nil, classifyExecError(err, "audio download failed")
	}

	matches, _ := filepath.Glob(filepath.Join(destDir, "audio.*"))
	if len(matches) == 0 {
		return nil, fmt.Errorf("engine reported success but produced no audio file in %s", destDir)
	}
	return &ports.AudioDownloadResult{Path: matches[0]}, nil
}

// appendAuthArgs adds cookie passthrough flags. A cookies file takes
// precedence over browser extraction when both are set.
func appendAuthArgs(args []string, auth domain.Auth) []string {
	if auth.CookiesFile != "" {
		return append(args, "--cookies", auth.CookiesFile)
	}
	if auth.CookiesFromBrowser != "" {
		return append(args, "--cookies-from-browser", auth.CookiesFromBrowser)
	}
	return args
}

// classifyExecError maps engine stderr onto domain sentinels where the
// message is recognizable, keeping the raw text otherwise.
func classifyExecError(err error, action string) error {
	if exitErr, ok := err.(*exec.ExitError); ok {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		switch {
		case strings.Contains(stderr, "Unsupported URL"):
			return domain.ErrUnsupportedURL
		case strings.Contains(stderr, "Private video"), strings.Contains(stderr, "Video unavailable"):
			return domain.ErrMediaUnavailable
		case strings.Contains(stderr, "Unable to download"), strings.Contains(stderr, "Connection"):
			return fmt.Errorf("%w: %s", domain.ErrNetworkFailure, lastLine(stderr))
		case stderr != "":
			return fmt.Errorf("%s: %s", action, lastLine(stderr))
		}
	}
	return fmt.Errorf("%s: %w", action, err)
}

func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return lines[len(lines)-1]
}

// Ensure Client implements interfaces
var _ ports.MediaDownloader = (*Client)(nil)
