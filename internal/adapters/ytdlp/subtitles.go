package ytdlp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vbell/mediagrab/internal/domain"
	"github.com/vbell/mediagrab/internal/ports"
)

// Subtitle tracks are small; cap the body read so a misbehaving server
// cannot balloon memory.
const maxSubtitleBytes = 16 << 20

const subtitleFetchTimeout = 60 * time.Second

// FetchSubtitle downloads one subtitle track over HTTP and returns its raw
// text. Track URLs come from the engine's metadata probe and are short-lived.
func (c *Client) FetchSubtitle(ctx context.Context, track domain.SubtitleTrack) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, subtitleFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("subtitle fetch failed: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSubtitleBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read subtitle body: %w", err)
	}
	return string(data), nil
}

// Ensure Client implements the metadata interface
var _ ports.MediaInfoProvider = (*Client)(nil)
