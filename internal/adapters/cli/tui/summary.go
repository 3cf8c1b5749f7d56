package tui

import (
	"fmt"
	"strings"

	"github.com/vbell/mediagrab/internal/application"
)

// renderProgressBar creates a text progress bar like [=====>    ]
// current=0, total=10, width=10 → [          ]
// current=10, total=10, width=10 → [==========]
func renderProgressBar(current, total, width int) string {
	if total <= 0 {
		return "[" + strings.Repeat(" ", width) + "]"
	}

	filled := current * width / total
	if filled >= width {
		return "[" + strings.Repeat("=", width) + "]"
	}
	if filled == 0 && current == 0 {
		return "[" + strings.Repeat(" ", width) + "]"
	}

	return "[" + strings.Repeat("=", filled) + ">" + strings.Repeat(" ", width-filled-1) + "]"
}

// RenderSummary formats the final batch tally: counts, elapsed time,
// per-item average, and every failed source with its reason.
func RenderSummary(summary *application.BatchSummary) string {
	var sb strings.Builder

	bar := renderProgressBar(summary.Succeeded, summary.Total, 20)
	sb.WriteString(fmt.Sprintf("\nDownload complete: %d/%d succeeded %s\n",
		summary.Succeeded, summary.Total, bar))
	sb.WriteString(fmt.Sprintf("Elapsed: %.1fs (%.1fs per item)\n",
		summary.Elapsed.Seconds(), summary.PerItem().Seconds()))

	if summary.Failed > 0 {
		sb.WriteString("\nFailures:\n")
		for _, f := range summary.Failures {
			sb.WriteString("  " + failStyle.Render(fmt.Sprintf("✗ %s: %s", f.Source, f.Message)) + "\n")
		}
	} else if summary.Total > 0 {
		sb.WriteString(okStyle.Render("All downloads succeeded") + "\n")
	}

	return sb.String()
}
