package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vbell/mediagrab/internal/adapters/cli/tui"
	"github.com/vbell/mediagrab/internal/application"
	"github.com/vbell/mediagrab/internal/config"
	"github.com/vbell/mediagrab/internal/domain"
	"github.com/vbell/mediagrab/internal/format"
	"github.com/vbell/mediagrab/internal/ports"
)

var (
	batchFileFlag  string
	stdinFlag      bool
	parallelFlag   bool
	maxWorkersFlag int
	mp3Flag        bool
	mp4Flag        bool
	highFlag       bool
	formatIDFlag   string
	chooseFlag     bool
	transcribeFlag bool
	infoFlag       bool
)

// NewGetCmd creates the get command
func NewGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [url...]",
		Short: "Download media from one or more URLs",
		Long: `Download media from video/audio hosting sites.

A single URL downloads directly. Multiple URLs, or --parallel with one,
fan out over a bounded worker pool and report an aggregate summary.

Example:
  mediagrab get https://youtube.com/watch?v=abc
  mediagrab get --mp3 https://soundcloud.com/artist/track
  mediagrab get --batch-file urls.txt --max-workers 5
  cat urls.txt | mediagrab get --stdin`,
		RunE: runGet,
	}

	cmd.Flags().StringVar(&batchFileFlag, "batch-file", "", "File with URLs, one per line (# comments ignored)")
	cmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read URLs from standard input")
	cmd.Flags().BoolVar(&parallelFlag, "parallel", false, "Use the parallel bulk path even for one URL")
	cmd.Flags().IntVar(&maxWorkersFlag, "max-workers", 0, fmt.Sprintf("Concurrent download workers (1-%d, default from config)", application.MaxWorkers))
	cmd.Flags().BoolVar(&mp3Flag, "mp3", false, "Download audio and convert to MP3")
	cmd.Flags().BoolVar(&mp4Flag, "mp4", false, "Prefer MP4 container")
	cmd.Flags().BoolVar(&highFlag, "high", false, "Best separate video and audio streams, merged")
	cmd.Flags().StringVar(&formatIDFlag, "format", "", "Explicit engine format ID or selector")
	cmd.Flags().BoolVar(&chooseFlag, "choose", false, "Pick the format from an interactive menu")
	cmd.Flags().BoolVar(&transcribeFlag, "transcribe", false, "Transcribe instead of downloading")
	cmd.Flags().BoolVar(&infoFlag, "info", false, "Show media information without downloading")

	return cmd
}

// resolveIntent applies the fixed flag precedence: mp3 > mp4 > high >
// explicit format > configured default.
func resolveIntent(cfg *config.Config) (format.Intent, error) {
	if chooseFlag {
		return chooseIntent()
	}

	switch {
	case mp3Flag:
		return format.IntentMP3, nil
	case mp4Flag:
		return format.IntentMP4, nil
	case highFlag:
		return format.IntentHigh, nil
	case formatIDFlag != "":
		return format.Intent(formatIDFlag), nil
	default:
		return format.Intent(cfg.Defaults.Format), nil
	}
}

func chooseIntent() (format.Intent, error) {
	selected, err := tui.RunMenu("Which format?", []tui.MenuOption{
		{Label: "Best available", Value: "best"},
		{Label: "High quality (merged video+audio)", Value: "high"},
		{Label: "MP4 container", Value: "mp4"},
		{Label: "MP3 audio", Value: "mp3"},
		{Label: "Audio only (native codec)", Value: "bestaudio"},
	})
	if err != nil {
		return "", err
	}
	if selected == "" {
		return "", fmt.Errorf("no format selected")
	}
	return format.Intent(selected), nil
}

func authFromFlags() domain.Auth {
	return domain.Auth{
		CookiesFile:        cookiesFlag,
		CookiesFromBrowser: cookiesFromBrowserFlag,
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	urls, err := CollectURLs(args, batchFileFlag, stdinFlag)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs provided")
	}

	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	if transcribeFlag {
		return runTranscribePipeline(cmd.Context(), app, urls[0])
	}

	if !app.Capabilities.Extractor {
		return domain.ErrExtractorNotFound
	}

	if infoFlag {
		return runInfo(cmd.Context(), app, urls)
	}

	intent, err := resolveIntent(app.Config)
	if err != nil {
		return err
	}

	// Resolve once; every worker shares one already-validated format.
	resolved := format.Resolve(intent, app.Capabilities)
	for _, warning := range resolved.Warnings {
		app.Reporter.Warn(warning)
	}

	outputDir, err := config.ResolveDownloadDir(outputDirFlag)
	if err != nil {
		return fmt.Errorf("no writable download directory: %w", err)
	}
	app.Reporter.Status("saving to " + outputDir)

	if len(urls) > 1 || parallelFlag {
		// An explicit worker count is validated as given, including invalid
		// values; only an absent flag falls back to the configured default.
		workers := app.Config.Defaults.Workers
		if cmd.Flags().Changed("max-workers") {
			workers = maxWorkersFlag
		}
		return runBulk(cmd.Context(), app, urls, resolved, outputDir, workers)
	}
	return runSingle(cmd.Context(), app, urls[0], resolved, outputDir)
}

func runBulk(ctx context.Context, app *App, urls []string, resolved format.Resolved, outputDir string, workers int) error {
	opts := application.BatchOptions{
		Format:      resolved,
		OutputDir:   outputDir,
		Workers:     workers,
		Auth:        authFromFlags(),
		ArchiveFile: archiveFlag,
	}
	if !quietFlag {
		progress := tui.NewLiveProgress(len(urls))
		opts.OnResult = func(res application.DownloadResult, _ application.TrackerStatus) {
			progress.Add(res.Source, res.Succeeded, res.Message, res.Elapsed)
		}
	}

	summary, err := app.BatchSvc.Run(ctx, urls, opts)
	if err != nil {
		return err
	}

	fmt.Print(tui.RenderSummary(summary))

	// Per-item failures are part of a completed run, not a process error.
	return nil
}

func runSingle(ctx context.Context, app *App, url string, resolved format.Resolved, outputDir string) error {
	info, err := app.Downloader.Probe(ctx, url, authFromFlags())
	if err == nil {
		printMediaInfo(url, info)
	} else {
		app.Reporter.Warn(fmt.Sprintf("could not fetch media info: %v", err))
		info = nil
	}

	req := downloadRequest(url, resolved, outputDir, info)
	if err := app.Downloader.Download(ctx, req); err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	app.Reporter.Status("download complete")
	return nil
}

func downloadRequest(url string, resolved format.Resolved, outputDir string, info *domain.MediaInfo) ports.DownloadRequest {
	req := ports.DownloadRequest{
		URL:         url,
		Format:      resolved,
		OutputDir:   outputDir,
		Auth:        authFromFlags(),
		ArchiveFile: archiveFlag,
	}
	if info != nil && info.IsPlaylist {
		req.IsPlaylist = true
		// Playlists get an archive by default so a re-run resumes instead of
		// re-downloading every entry.
		if req.ArchiveFile == "" {
			req.ArchiveFile = filepath.Join(outputDir, ".mediagrab-archive.txt")
		}
	}
	return req
}

func runInfo(ctx context.Context, app *App, urls []string) error {
	for _, url := range urls {
		info, err := app.Downloader.Probe(ctx, url, authFromFlags())
		if err != nil {
			return fmt.Errorf("could not fetch info for %s: %w", url, err)
		}
		printMediaInfo(url, info)
	}
	return nil
}

func printMediaInfo(url string, info *domain.MediaInfo) {
	if quietFlag || info == nil {
		return
	}

	fmt.Printf("Site:     %s\n", domain.DetectSite(url))
	if info.IsPlaylist {
		fmt.Printf("Playlist: %s\n", info.DisplayTitle())
		fmt.Printf("Entries:  %d\n", info.EntryCount)
	} else {
		fmt.Printf("Title:    %s\n", info.DisplayTitle())
		fmt.Printf("Duration: %s\n", tui.FormatDuration(info.DurationSeconds))
	}
	if info.Uploader != "" {
		fmt.Printf("Uploader: %s\n", info.Uploader)
	}
	if info.ViewCount > 0 {
		fmt.Printf("Views:    %s\n", tui.FormatCount(info.ViewCount))
	}
}
