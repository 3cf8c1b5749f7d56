package ytdlp

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/vbell/mediagrab/internal/domain"
)

func TestAppendAuthArgs(t *testing.T) {
	args := appendAuthArgs(nil, domain.Auth{})
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}

	args = appendAuthArgs(nil, domain.Auth{CookiesFile: "/tmp/cookies.txt"})
	if len(args) != 2 || args[0] != "--cookies" || args[1] != "/tmp/cookies.txt" {
		t.Errorf("args = %v", args)
	}

	args = appendAuthArgs(nil, domain.Auth{CookiesFromBrowser: "firefox"})
	if len(args) != 2 || args[0] != "--cookies-from-browser" || args[1] != "firefox" {
		t.Errorf("args = %v", args)
	}

	// The cookies file wins when both are set.
	args = appendAuthArgs(nil, domain.Auth{CookiesFile: "/tmp/cookies.txt", CookiesFromBrowser: "firefox"})
	if len(args) != 2 || args[0] != "--cookies" {
		t.Errorf("args = %v, want cookies file only", args)
	}
}

func exitErrWithStderr(stderr string) error {
	return &exec.ExitError{Stderr: []byte(stderr)}
}

func TestClassifyExecError(t *testing.T) {
	tests := []struct {
		stderr string
		want   error
	}{
		{"ERROR: Unsupported URL: https://example.com", domain.ErrUnsupportedURL},
		{"ERROR: Private video. Sign in if you've been granted access", domain.ErrMediaUnavailable},
		{"ERROR: Video unavailable", domain.ErrMediaUnavailable},
		{"ERROR: Unable to download webpage", domain.ErrNetworkFailure},
		{"ERROR: Connection reset by peer", domain.ErrNetworkFailure},
	}

	for _, tt := range tests {
		err := classifyExecError(exitErrWithStderr(tt.stderr), "download failed")
		if !errors.Is(err, tt.want) {
			t.Errorf("classifyExecError(%q) = %v, want %v", tt.stderr, err, tt.want)
		}
	}
}

func TestClassifyExecErrorUnrecognizedStderr(t *testing.T) {
	err := classifyExecError(exitErrWithStderr("ERROR: something novel"), "download failed")
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, sentinel := range []error{domain.ErrUnsupportedURL, domain.ErrMediaUnavailable, domain.ErrNetworkFailure} {
		if errors.Is(err, sentinel) {
			t.Errorf("unrecognized stderr mapped to sentinel %v", sentinel)
		}
	}
}

func TestClassifyExecErrorNonExitError(t *testing.T) {
	plain := errors.New("context deadline exceeded")
	err := classifyExecError(plain, "probe failed")
	if !errors.Is(err, plain) {
		t.Errorf("err = %v, want wrap of %v", err, plain)
	}
}

func TestCollectTracks(t *testing.T) {
	raw := map[string][]subtitleInfo{
		"en": {{Ext: "vtt", URL: "https://cdn/en.vtt"}, {Ext: "srt", URL: ""}},
		"de": {{Ext: "srt", URL: "https://cdn/de.srt"}},
	}

	tracks := collectTracks(raw, true)
	if len(tracks) != 2 {
		t.Fatalf("len(tracks) = %d, want 2 (URL-less variants dropped)", len(tracks))
	}
	for _, track := range tracks {
		if !track.Auto {
			t.Errorf("track %+v not marked auto", track)
		}
		if track.URL == "" {
			t.Errorf("track %+v kept without URL", track)
		}
	}
}
