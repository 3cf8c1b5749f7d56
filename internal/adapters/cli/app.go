package cli

import (
	"github.com/vbell/mediagrab/internal/adapters/ffmpeg"
	"github.com/vbell/mediagrab/internal/adapters/whisper"
	"github.com/vbell/mediagrab/internal/adapters/ytdlp"
	"github.com/vbell/mediagrab/internal/application"
	"github.com/vbell/mediagrab/internal/config"
	"github.com/vbell/mediagrab/internal/domain"
	"github.com/vbell/mediagrab/internal/ports"
)

// App holds all application dependencies
type App struct {
	Config       *config.Config
	Capabilities domain.Capabilities
	Downloader   *ytdlp.Client
	Converter    *ffmpeg.Converter
	Transcriber  *whisper.Transcriber
	Reporter     ports.Reporter

	BatchSvc      *application.BatchService
	TranscribeSvc *application.TranscribeService
}

// NewApp creates and wires up all dependencies. Engine availability is
// detected exactly once here and threaded through as an explicit value.
func NewApp(quiet bool) (*App, error) {
	if err := config.EnsureDirs(); err != nil {
		return nil, err
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}

	converter := ffmpeg.NewConverter()
	transcriber := whisper.NewTranscriber("")

	caps := domain.Capabilities{
		Transcoder:   converter.IsAvailable(),
		SpeechToText: transcriber.IsAvailable(),
	}
	downloader := ytdlp.NewClient(caps.Transcoder)
	caps.Extractor = downloader.IsAvailable()

	reporter := tuiReporter(quiet)

	batchSvc := application.NewBatchService(downloader, reporter)
	transcribeSvc := application.NewTranscribeService(downloader, downloader, transcriber, caps, reporter)

	return &App{
		Config:        cfg,
		Capabilities:  caps,
		Downloader:    downloader,
		Converter:     converter,
		Transcriber:   transcriber,
		Reporter:      reporter,
		BatchSvc:      batchSvc,
		TranscribeSvc: transcribeSvc,
	}, nil
}

var globalApp *App

// GetApp returns the global app instance, creating it if needed
func GetApp() (*App, error) {
	if globalApp == nil {
		app, err := NewApp(quietFlag)
		if err != nil {
			return nil, err
		}
		globalApp = app
	}
	return globalApp, nil
}
