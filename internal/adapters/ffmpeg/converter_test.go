package ffmpeg

import "testing"

func TestEstimateSize(t *testing.T) {
	tests := []struct {
		duration float64
		bitrate  int
		want     int64
	}{
		{60, 192, 1440000},
		{180, 320, 7200000},
		{0, 192, 0},
		{60, 0, 0},
		{-5, 192, 0},
	}

	for _, tt := range tests {
		if got := EstimateSize(tt.duration, tt.bitrate); got != tt.want {
			t.Errorf("EstimateSize(%v, %d) = %d, want %d", tt.duration, tt.bitrate, got, tt.want)
		}
	}
}

func TestQualityDescription(t *testing.T) {
	tests := []struct {
		codec   string
		bitrate int
		want    string
	}{
		{"flac", 1000, "Lossless (Original Quality)"},
		{"pcm_s16le", 1411, "Lossless (Original Quality)"},
		{"mp3", 320, "Very High (320kbps)"},
		{"aac", 256, "High (256kbps)"},
		{"vorbis", 192, "Good (192kbps)"},
		{"opus", 128, "Standard (128kbps)"},
		{"mp3", 96, "Low (96kbps)"},
		{"unknowncodec", 192, "192kbps"},
		{"mp3", 0, "Unknown quality"},
	}

	for _, tt := range tests {
		if got := QualityDescription(tt.codec, tt.bitrate); got != tt.want {
			t.Errorf("QualityDescription(%q, %d) = %q, want %q", tt.codec, tt.bitrate, got, tt.want)
		}
	}
}

func TestSupportedFormats(t *testing.T) {
	for _, key := range []string{"mp3", "aac", "m4a", "ogg", "wav", "flac"} {
		f, ok := SupportedFormats[key]
		if !ok {
			t.Errorf("format %q missing", key)
			continue
		}
		if f.Codec == "" || f.DefaultBitrate <= 0 {
			t.Errorf("format %q incomplete: %+v", key, f)
		}
	}

	if !SupportedFormats["wav"].Lossless || !SupportedFormats["flac"].Lossless {
		t.Error("wav and flac are lossless")
	}
	if SupportedFormats["mp3"].Lossless {
		t.Error("mp3 is lossy")
	}
}

func TestLastNonEmptyLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"error one\nerror two\n", "error two"},
		{"only line", "only line"},
		{"line\n\n   \n", "line"},
		{"", "unknown error"},
	}

	for _, tt := range tests {
		if got := lastNonEmptyLine(tt.in); got != tt.want {
			t.Errorf("lastNonEmptyLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
