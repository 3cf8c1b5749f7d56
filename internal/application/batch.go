package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vbell/mediagrab/internal/domain"
	"github.com/vbell/mediagrab/internal/format"
	"github.com/vbell/mediagrab/internal/ports"
)

// MaxWorkers caps the worker pool regardless of what the caller asks for.
const MaxWorkers = 10

// BatchOptions configures one bulk download run. The format is resolved once
// by the caller, so every worker shares an already-validated specification.
type BatchOptions struct {
	Format      format.Resolved
	OutputDir   string
	Workers     int
	Auth        domain.Auth
	ArchiveFile string

	// OnResult, when set, is invoked from worker goroutines after each item
	// is recorded, with a consistent post-record counter snapshot. It must be
	// safe for concurrent use.
	OnResult func(res DownloadResult, status TrackerStatus)
}

// BatchSummary is the final tally, computed only after every task has joined.
type BatchSummary struct {
	Total     int
	Succeeded int
	Failed    int
	Elapsed   time.Duration
	Failures  []DownloadResult
}

// PerItem returns the average wall-clock time per item.
func (s BatchSummary) PerItem() time.Duration {
	if s.Total == 0 {
		return 0
	}
	return s.Elapsed / time.Duration(s.Total)
}

// BatchService fans a list of URLs out over a bounded worker pool and
// aggregates per-item outcomes into a Tracker.
type BatchService struct {
	downloader ports.MediaDownloader
	reporter   ports.Reporter
}

// NewBatchService creates a batch download coordinator.
func NewBatchService(downloader ports.MediaDownloader, reporter ports.Reporter) *BatchService {
	return &BatchService{
		downloader: downloader,
		reporter:   reporter,
	}
}

// Run downloads every URL with at most opts.Workers concurrent tasks and
// returns the aggregate summary. Individual failures are recorded, never
// propagated; the only errors returned are configuration errors detected
// before any work starts.
func (s *BatchService) Run(ctx context.Context, urls []string, opts BatchOptions) (*BatchSummary, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("no URLs to download")
	}
	if opts.Workers < 1 {
		return nil, fmt.Errorf("worker count must be at least 1, got %d", opts.Workers)
	}
	if opts.Workers > MaxWorkers {
		s.reporter.Warn(fmt.Sprintf("worker count %d exceeds maximum, using %d", opts.Workers, MaxWorkers))
		opts.Workers = MaxWorkers
	}

	tracker := NewTracker()
	tracker.SetTotal(len(urls))
	start := time.Now()

	// Semaphore-bounded worker pool with a full-barrier join: the summary
	// is computed strictly after every task has reported.
	sem := make(chan struct{}, opts.Workers)
	var wg sync.WaitGroup

	for _, url := range urls {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			s.downloadOne(ctx, url, opts, tracker)
		}(url)
	}

	wg.Wait()

	status := tracker.Status()
	return &BatchSummary{
		Total:     status.Total,
		Succeeded: status.Succeeded,
		Failed:    status.Failed,
		Elapsed:   time.Since(start),
		Failures:  tracker.Failures(),
	}, nil
}

// downloadOne performs a single task. Every failure mode, panics included,
// is converted into a failed tracker record so one item can never abort its
// siblings.
func (s *BatchService) downloadOne(ctx context.Context, url string, opts BatchOptions, tracker *Tracker) {
	start := time.Now()
	finish := func(succeeded bool, message string) {
		res := DownloadResult{
			Source:    url,
			Succeeded: succeeded,
			Message:   message,
			Elapsed:   time.Since(start),
		}
		tracker.Record(res)
		if opts.OnResult != nil {
			opts.OnResult(res, tracker.Status())
		}
	}

	defer func() {
		if r := recover(); r != nil {
			finish(false, fmt.Sprintf("unexpected failure: %v", r))
		}
	}()

	err := s.downloader.Download(ctx, ports.DownloadRequest{
		URL:         url,
		Format:      opts.Format,
		OutputDir:   opts.OutputDir,
		Auth:        opts.Auth,
		ArchiveFile: opts.ArchiveFile,
	})
	if err != nil {
		finish(false, err.Error())
		return
	}
	finish(true, "downloaded")
}
