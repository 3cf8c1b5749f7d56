package subtitle

import "testing"

func TestNormalizeSRT(t *testing.T) {
	raw := "1\n00:00:00,000 --> 00:00:02,000\nHello there\n\n2\n00:00:02,000 --> 00:00:04,000\nGeneral Kenobi\n"

	got := Normalize(raw)
	want := "Hello there General Kenobi"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeVTTHeaderAndMetadata(t *testing.T) {
	raw := `WEBVTT
Kind: captions
Language: en

00:00:00.000 --> 00:00:02.000
first line

NOTE internal comment

00:00:02.000 --> 00:00:04.000
second line`

	got := Normalize(raw)
	want := "first line second line"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeStripsInlineMarkup(t *testing.T) {
	raw := "00:00:00.000 --> 00:00:02.000\n<c.colorE5E5E5>styled</c> and {\\an8}positioned\n"

	got := Normalize(raw)
	want := "styled and positioned"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

// Auto-generated captions repeat each line across overlapping cues; lines
// differing only in markup count as duplicates because tags are stripped
// before the comparison.
func TestNormalizeCollapsesAdjacentDuplicates(t *testing.T) {
	raw := `00:00:00.000 --> 00:00:02.000
so today we are
00:00:02.000 --> 00:00:04.000
<00:00:02.500>so today we are
00:00:04.000 --> 00:00:06.000
going to talk about`

	got := Normalize(raw)
	want := "so today we are going to talk about"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

// Identical lines separated by different text both survive; only adjacent
// repeats collapse.
func TestNormalizeKeepsNonAdjacentRepeats(t *testing.T) {
	raw := "yeah\nexactly\nyeah\n"

	got := Normalize(raw)
	want := "yeah exactly yeah"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeCRLFInput(t *testing.T) {
	raw := "1\r\n00:00:00,000 --> 00:00:01,000\r\nwindows line endings\r\n"

	got := Normalize(raw)
	want := "windows line endings"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeEmptyAndStructuralOnly(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q", got)
	}
	if got := Normalize("WEBVTT\n\n1\n00:00:00.000 --> 00:00:01.000\n"); got != "" {
		t.Errorf("Normalize(structural only) = %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"1\n00:00:00,000 --> 00:00:02,000\nHello <b>world</b>\n",
		"WEBVTT\n\n00:00:00.000 --> 00:00:02.000\nrepeat\n00:00:02.000 --> 00:00:04.000\nrepeat\n",
		"plain text already",
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("not idempotent: %q -> %q -> %q", raw, once, twice)
		}
	}
}
