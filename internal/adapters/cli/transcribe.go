package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vbell/mediagrab/internal/adapters/cli/tui"
	"github.com/vbell/mediagrab/internal/application"
	"github.com/vbell/mediagrab/internal/config"
	"github.com/vbell/mediagrab/internal/domain"
)

var (
	languageFlag   string
	modelFlag      string
	txtFlag        bool
	srtFlag        bool
	vttFlag        bool
	forceEngineRun bool
	subsOnlyFlag   bool
	askSourceFlag  bool
)

// NewTranscribeCmd creates the transcribe command
func NewTranscribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcribe <url-or-file>",
		Short: "Transcribe a URL or local media file to text",
		Long: `Transcribe media to text, SRT or VTT.

For URLs, existing subtitle tracks are preferred: manual captions beat
auto-generated ones and no audio download is needed. When no usable track
exists (or --engine is given) the audio is downloaded and run through the
speech-to-text engine, which requires both whisper and ffmpeg.

Local files always go through the speech-to-text engine.

Example:
  mediagrab transcribe https://youtube.com/watch?v=abc
  mediagrab transcribe --srt --language de interview.mp3
  mediagrab transcribe --engine --model medium https://youtube.com/watch?v=abc`,
		Args: cobra.ExactArgs(1),
		RunE: runTranscribe,
	}

	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Subtitle language prefix and engine language hint (default from config)")
	cmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Speech-to-text model (tiny, base, small, medium, large)")
	cmd.Flags().BoolVar(&txtFlag, "txt", false, "Write plain text output (default when no format flag is set)")
	cmd.Flags().BoolVar(&srtFlag, "srt", false, "Write SRT subtitle output")
	cmd.Flags().BoolVar(&vttFlag, "vtt", false, "Write WebVTT subtitle output")
	cmd.Flags().BoolVar(&forceEngineRun, "engine", false, "Skip subtitle tracks and always run the speech-to-text engine")
	cmd.Flags().BoolVar(&subsOnlyFlag, "subs-only", false, "Only use existing subtitle tracks, never the speech-to-text engine")
	cmd.Flags().BoolVar(&askSourceFlag, "ask", false, "Ask interactively when both subtitles and the engine are available")

	return cmd
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	return runTranscribePipeline(cmd.Context(), app, args[0])
}

// runTranscribePipeline is shared with `get --transcribe`.
func runTranscribePipeline(ctx context.Context, app *App, input string) error {
	language := languageFlag
	if language == "" {
		language = app.Config.Defaults.Language
	}
	model := modelFlag
	if model == "" {
		model = app.Config.Defaults.Model
	}

	if forceEngineRun && subsOnlyFlag {
		return fmt.Errorf("--engine and --subs-only are mutually exclusive")
	}

	opts := application.TranscribeOptions{
		Language:         language,
		Model:            model,
		Auth:             authFromFlags(),
		RequireSubtitles: subsOnlyFlag,
	}
	switch {
	case forceEngineRun:
		opts.UseSubtitles = func(domain.SubtitleTrack) bool { return false }
	case askSourceFlag && !quietFlag:
		opts.UseSubtitles = askSubtitleChoice
	}

	result, err := app.TranscribeSvc.Transcribe(ctx, input, opts)
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}

	outputDir, err := config.ResolveDownloadDir(outputDirFlag)
	if err != nil {
		return fmt.Errorf("no writable output directory: %w", err)
	}

	baseName := transcriptBaseName(input, result.Info)
	written, err := WriteTranscript(result.Transcript, outputDir, baseName, requestedFormats(), app.Reporter)
	if err != nil {
		return err
	}
	if len(written) == 0 {
		return fmt.Errorf("no output written: requested formats need timing the transcript does not have")
	}

	app.Reporter.Status(fmt.Sprintf("transcript (%s) written to %s",
		result.Transcript.Source, strings.Join(written, ", ")))
	return nil
}

// requestedFormats collects the output format flags, defaulting to txt.
func requestedFormats() []string {
	var formats []string
	if txtFlag {
		formats = append(formats, "txt")
	}
	if srtFlag {
		formats = append(formats, "srt")
	}
	if vttFlag {
		formats = append(formats, "vtt")
	}
	if len(formats) == 0 {
		formats = []string{"txt"}
	}
	return formats
}

func askSubtitleChoice(track domain.SubtitleTrack) bool {
	kind := "manual"
	if track.Auto {
		kind = "auto-generated"
	}
	selected, err := tui.RunMenu(
		fmt.Sprintf("Found %s %s subtitles. Use them?", kind, track.Language),
		[]tui.MenuOption{
			{Label: "Use existing subtitles (fast)", Value: "subtitles"},
			{Label: "Re-transcribe with the speech-to-text engine (slow, timed)", Value: "engine"},
		})
	if err != nil || selected == "" {
		return true
	}
	return selected == "subtitles"
}
