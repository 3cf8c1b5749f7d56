package domain

import (
	"net/url"
	"strings"
	"time"
)

// SubtitleTrack is one downloadable caption track attached to a remote video.
type SubtitleTrack struct {
	Language string // track key as reported by the extractor, e.g. "en", "en-US"
	Format   string // "vtt", "srt", "json3", ...
	URL      string
	Auto     bool // true for platform auto-generated captions
}

// MediaInfo is the metadata the extraction engine reports for a URL.
type MediaInfo struct {
	Title           string
	Uploader        string
	DurationSeconds float64
	ViewCount       int64
	UploadDate      string
	IsPlaylist      bool
	EntryCount      int // number of entries when IsPlaylist
	Subtitles       []SubtitleTrack
	FetchedAt       time.Time
}

// DisplayTitle returns the title or a placeholder when metadata was partial.
func (m *MediaInfo) DisplayTitle() string {
	if m == nil || m.Title == "" {
		return "Unknown"
	}
	return m.Title
}

// Site labels for display purposes only; anything unrecognized is SiteOther.
const (
	SiteYouTube     = "youtube"
	SiteVimeo       = "vimeo"
	SiteSoundCloud  = "soundcloud"
	SiteDailymotion = "dailymotion"
	SiteTwitch      = "twitch"
	SiteBandcamp    = "bandcamp"
	SiteTikTok      = "tiktok"
	SiteOther       = "other"
)

var siteDomains = map[string]string{
	"youtube.com":     SiteYouTube,
	"youtu.be":        SiteYouTube,
	"vimeo.com":       SiteVimeo,
	"soundcloud.com":  SiteSoundCloud,
	"dailymotion.com": SiteDailymotion,
	"twitch.tv":       SiteTwitch,
	"bandcamp.com":    SiteBandcamp,
	"tiktok.com":      SiteTikTok,
}

// DetectSite maps a URL's hostname to a known site label.
func DetectSite(rawURL string) string {
	parsed, err := url.Parse(strings.ToLower(strings.TrimSpace(rawURL)))
	if err != nil {
		return SiteOther
	}

	host := parsed.Host
	if host == "" {
		// Bare "youtube.com/watch?v=..." style input
		host, _, _ = strings.Cut(parsed.Path, "/")
	}
	host = strings.TrimPrefix(host, "www.")

	if site, ok := siteDomains[host]; ok {
		return site
	}
	for domainSuffix, site := range siteDomains {
		if strings.HasSuffix(host, "."+domainSuffix) {
			return site
		}
	}
	return SiteOther
}

const unsafeFilenameChars = `/\:*?"<>|`

// SanitizeTitle turns a media title into a filename-safe string.
func SanitizeTitle(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafeFilenameChars, r) || r < 0x20 {
			return '_'
		}
		return r
	}, title)

	cleaned = strings.Trim(cleaned, " .")
	if cleaned == "" {
		return "untitled"
	}
	return cleaned
}
