// Package subtitle turns raw caption markup (SRT, WebVTT) into clean prose
// text. Auto-generated captions repeat lines across overlapping timing
// windows and carry inline styling tags; both are stripped here.
package subtitle

import (
	"regexp"
	"strings"
)

// numericLineRe matches sequence-index lines ("1", "2", ...).
var numericLineRe = regexp.MustCompile(`^\d+$`)

// tagRe matches inline markup tags like <b>, <c.colorE5E5E5>, <00:00:01.000>.
var tagRe = regexp.MustCompile(`<[^>]*>`)

// cueSettingRe matches positioning directives like {\an8}.
var cueSettingRe = regexp.MustCompile(`\{[^}]*\}`)

// Structural lines recognizable by a fixed literal prefix.
var structuralPrefixes = []string{
	"WEBVTT",
	"Kind:",
	"Language:",
	"NOTE",
	"STYLE",
}

// Normalize converts raw subtitle markup into one flat prose string.
//
// Line processing order matters: markup is stripped before adjacent
// duplicates are collapsed, so two lines differing only by tags are
// recognized as the same caption. Output is idempotent under Normalize.
func Normalize(raw string) string {
	lines := strings.Split(raw, "\n")
	var kept []string
	prev := ""

	for _, line := range lines {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line == "" {
			continue
		}
		if numericLineRe.MatchString(line) {
			continue
		}
		if isStructural(line) {
			continue
		}
		if strings.Contains(line, "-->") {
			continue
		}

		line = tagRe.ReplaceAllString(line, "")
		line = cueSettingRe.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Collapse immediately-repeated caption lines.
		if line == prev {
			continue
		}
		prev = line
		kept = append(kept, line)
	}

	return strings.Join(kept, " ")
}

func isStructural(line string) bool {
	for _, prefix := range structuralPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
