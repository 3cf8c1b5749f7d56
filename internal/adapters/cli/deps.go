package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vbell/mediagrab/internal/config"
)

// NewDepsCmd creates the deps command
func NewDepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Show the status of the external engines",
		Long: `Show which external engines were found and what still works without
each one. yt-dlp is required for any download; ffmpeg enables conversion,
merging and MP3 extraction; whisper enables speech-to-text transcription.`,
		RunE: runDeps,
	}
}

func runDeps(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	printDep("yt-dlp (extraction)", app.Capabilities.Extractor,
		"downloads disabled")
	printDep("ffmpeg (transcoding)", app.Capabilities.Transcoder,
		"no conversion, merging or MP3 extraction; downloads fall back to single-stream formats")
	printDep("whisper (speech-to-text)", app.Capabilities.SpeechToText,
		"transcription limited to existing subtitle tracks")

	model := app.Config.Defaults.Model
	if app.Capabilities.SpeechToText {
		if app.Transcriber.IsModelDownloaded(model) {
			fmt.Printf("  model %q present in %s\n", model, config.ModelsDir())
		} else {
			fmt.Printf("  model %q missing from %s\n", model, config.ModelsDir())
		}
	}

	return nil
}

func printDep(name string, available bool, consequence string) {
	if available {
		fmt.Printf("✓ %s\n", name)
		return
	}
	fmt.Printf("✗ %s: not found (%s)\n", name, consequence)
}
