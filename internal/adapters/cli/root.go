package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vbell/mediagrab/internal/adapters/cli/tui"
	"github.com/vbell/mediagrab/internal/ports"
)

var (
	// Global flags
	quietFlag              bool
	outputDirFlag          string
	cookiesFlag            string
	cookiesFromBrowserFlag string
	archiveFlag            string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mediagrab",
		Short: "Download, convert and transcribe media from 1800+ sites",
		Long: `mediagrab is a CLI tool that downloads media from video and audio
hosting sites, converts local audio files between formats, and transcribes
media to text or subtitle files.

It orchestrates three external engines: yt-dlp for extraction, ffmpeg for
transcoding, and whisper.cpp for speech-to-text.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVarP(&outputDirFlag, "output-dir", "o", "", "Directory for output files")
	rootCmd.PersistentFlags().StringVar(&cookiesFlag, "cookies", "", "Cookies file passed to the extraction engine (takes precedence over --cookies-from-browser)")
	rootCmd.PersistentFlags().StringVar(&cookiesFromBrowserFlag, "cookies-from-browser", "", "Browser to extract cookies from (chrome, firefox, ...)")
	rootCmd.PersistentFlags().StringVar(&archiveFlag, "archive", "", "Download archive file for incremental downloads")

	rootCmd.AddCommand(NewGetCmd())
	rootCmd.AddCommand(NewTranscribeCmd())
	rootCmd.AddCommand(NewConvertCmd())
	rootCmd.AddCommand(NewDepsCmd())

	return rootCmd
}

func tuiReporter(quiet bool) ports.Reporter {
	return tui.NewStyledReporter(quiet)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
