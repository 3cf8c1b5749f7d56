package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vbell/mediagrab/internal/application"
)

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		current, total, width int
		want                  string
	}{
		{0, 10, 10, "[          ]"},
		{10, 10, 10, "[==========]"},
		{5, 10, 10, "[=====>    ]"},
		{1, 10, 10, "[=>        ]"},
		{3, 0, 10, "[          ]"},
	}

	for _, tt := range tests {
		if got := renderProgressBar(tt.current, tt.total, tt.width); got != tt.want {
			t.Errorf("renderProgressBar(%d, %d, %d) = %q, want %q",
				tt.current, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestRenderSummaryAllSucceeded(t *testing.T) {
	out := RenderSummary(&application.BatchSummary{
		Total:     3,
		Succeeded: 3,
		Elapsed:   6 * time.Second,
	})

	if !strings.Contains(out, "3/3 succeeded") {
		t.Errorf("missing tally: %q", out)
	}
	if !strings.Contains(out, "6.0s") || !strings.Contains(out, "2.0s per item") {
		t.Errorf("missing timing: %q", out)
	}
	if !strings.Contains(out, "All downloads succeeded") {
		t.Errorf("missing success line: %q", out)
	}
}

func TestRenderSummaryWithFailures(t *testing.T) {
	out := RenderSummary(&application.BatchSummary{
		Total:     2,
		Succeeded: 1,
		Failed:    1,
		Elapsed:   time.Second,
		Failures: []application.DownloadResult{
			{Source: "https://example.com/bad", Message: "network unreachable"},
		},
	})

	if !strings.Contains(out, "1/2 succeeded") {
		t.Errorf("missing tally: %q", out)
	}
	if !strings.Contains(out, "https://example.com/bad") || !strings.Contains(out, "network unreachable") {
		t.Errorf("missing failure detail: %q", out)
	}
	if strings.Contains(out, "All downloads succeeded") {
		t.Errorf("success line shown despite failures: %q", out)
	}
}
