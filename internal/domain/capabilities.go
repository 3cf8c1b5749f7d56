package domain

// Capabilities records which optional external engines are present. It is
// built once at startup and passed explicitly wherever a decision depends on
// engine availability, so decision paths can be tested with arbitrary
// combinations.
type Capabilities struct {
	Extractor    bool // yt-dlp
	Transcoder   bool // ffmpeg
	SpeechToText bool // whisper.cpp
}
