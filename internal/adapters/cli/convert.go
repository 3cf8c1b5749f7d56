package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vbell/mediagrab/internal/adapters/cli/tui"
	"github.com/vbell/mediagrab/internal/adapters/ffmpeg"
	"github.com/vbell/mediagrab/internal/domain"
)

var (
	bitrateFlag   int
	overwriteFlag bool
)

// NewConvertCmd creates the convert command
func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input-file> [format]",
		Short: "Convert a local audio file to another format",
		Long: `Convert a local audio file using the transcoding engine.

Supported formats: mp3, aac, m4a, ogg, wav, flac. With no format argument
an interactive menu is shown.

Example:
  mediagrab convert song.wav mp3
  mediagrab convert --bitrate 320 song.flac mp3`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runConvert,
	}

	cmd.Flags().IntVarP(&bitrateFlag, "bitrate", "b", 0, "Output bitrate in kbps (default per format, ignored for lossless)")
	cmd.Flags().BoolVarP(&overwriteFlag, "force", "f", false, "Overwrite the output file if it exists")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	if !app.Capabilities.Transcoder {
		return domain.ErrTranscoderNotFound
	}

	input := args[0]
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input file not found: %s", input)
	}

	formatKey, err := resolveConvertFormat(args)
	if err != nil {
		return err
	}
	target, ok := ffmpeg.SupportedFormats[formatKey]
	if !ok {
		return fmt.Errorf("unsupported output format %q (want one of %s)", formatKey, strings.Join(formatKeys(), ", "))
	}

	output := outputPathFor(input, formatKey)
	if !overwriteFlag {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", output)
		}
	}

	bitrate := bitrateFlag
	if bitrate <= 0 {
		bitrate = target.DefaultBitrate
	}

	// A failed probe only degrades the preview, never the conversion.
	if meta, err := app.Converter.ProbeMetadata(cmd.Context(), input); err == nil && !quietFlag {
		fmt.Printf("Input:    %s (%s, %s)\n", filepath.Base(input),
			ffmpeg.QualityDescription(meta.Codec, meta.BitrateKbps),
			tui.FormatDuration(meta.DurationSeconds))
		fmt.Printf("Output:   %s (%s, ~%s)\n", filepath.Base(output), target.Description,
			tui.FormatSize(ffmpeg.EstimateSize(meta.DurationSeconds, bitrate)))
	}

	app.Reporter.Status(fmt.Sprintf("converting to %s", target.Name))
	if err := app.Converter.Convert(cmd.Context(), input, output, formatKey, bitrateFlag); err != nil {
		return err
	}

	app.Reporter.Status("saved " + output)
	return nil
}

func resolveConvertFormat(args []string) (string, error) {
	if len(args) == 2 {
		return strings.ToLower(args[1]), nil
	}

	var options []tui.MenuOption
	for _, key := range formatKeys() {
		f := ffmpeg.SupportedFormats[key]
		options = append(options, tui.MenuOption{
			Label: fmt.Sprintf("%-4s %s", f.Name, f.Description),
			Value: key,
		})
	}
	selected, err := tui.RunMenu("Convert to which format?", options)
	if err != nil {
		return "", err
	}
	if selected == "" {
		return "", fmt.Errorf("no format selected")
	}
	return selected, nil
}

func formatKeys() []string {
	keys := make([]string, 0, len(ffmpeg.SupportedFormats))
	for key := range ffmpeg.SupportedFormats {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// outputPathFor honors --output-dir and swaps the extension.
func outputPathFor(input, formatKey string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dir := filepath.Dir(input)
	if outputDirFlag != "" {
		dir = outputDirFlag
	}
	return filepath.Join(dir, base+"."+formatKey)
}
