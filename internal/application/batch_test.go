package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vbell/mediagrab/internal/domain"
	"github.com/vbell/mediagrab/internal/ports"
)

// mockProvider returns canned metadata keyed by URL.
type mockProvider struct {
	infos     map[string]*domain.MediaInfo
	subtitles map[string]string // track URL -> raw content
	probeErr  error
	fetchErr  error
}

func (m *mockProvider) Probe(_ context.Context, url string, _ domain.Auth) (*domain.MediaInfo, error) {
	if m.probeErr != nil {
		return nil, m.probeErr
	}
	if info, ok := m.infos[url]; ok {
		return info, nil
	}
	return &domain.MediaInfo{Title: "title for " + url}, nil
}

func (m *mockProvider) FetchSubtitle(_ context.Context, track domain.SubtitleTrack) (string, error) {
	if m.fetchErr != nil {
		return "", m.fetchErr
	}
	return m.subtitles[track.URL], nil
}

// mockDownloader fails the URLs listed in failWith and tracks concurrency.
type mockDownloader struct {
	failWith map[string]error
	panicOn  string
	delay    time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	calls       atomic.Int32
}

func (m *mockDownloader) Download(_ context.Context, req ports.DownloadRequest) error {
	m.calls.Add(1)
	cur := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		max := m.maxInFlight.Load()
		if cur <= max || m.maxInFlight.CompareAndSwap(max, cur) {
			break
		}
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	if req.URL == m.panicOn {
		panic("mock panic for " + req.URL)
	}
	if err, ok := m.failWith[req.URL]; ok {
		return err
	}
	return nil
}

func (m *mockDownloader) DownloadAudio(_ context.Context, url, destDir string, _ domain.Auth) (*ports.AudioDownloadResult, error) {
	return &ports.AudioDownloadResult{Path: destDir + "/audio.wav"}, nil
}

// mockReporter captures status and warning lines.
type mockReporter struct {
	mu       sync.Mutex
	statuses []string
	warnings []string
}

func (m *mockReporter) Status(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, msg)
}

func (m *mockReporter) Warn(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings = append(m.warnings, msg)
}

func (m *mockReporter) hasWarningContaining(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func newBatchService(dl *mockDownloader, rep *mockReporter) *BatchService {
	return NewBatchService(dl, rep)
}

func TestBatchRunEmptyURLList(t *testing.T) {
	svc := newBatchService(&mockDownloader{}, &mockReporter{})
	_, err := svc.Run(context.Background(), nil, BatchOptions{Workers: 2})
	if err == nil {
		t.Fatal("expected error for empty URL list")
	}
}

func TestBatchRunRejectsZeroWorkers(t *testing.T) {
	svc := newBatchService(&mockDownloader{}, &mockReporter{})
	_, err := svc.Run(context.Background(), []string{"u1"}, BatchOptions{Workers: 0})
	if err == nil {
		t.Fatal("expected error for zero workers")
	}
}

func TestBatchRunRejectsNegativeWorkers(t *testing.T) {
	svc := newBatchService(&mockDownloader{}, &mockReporter{})
	_, err := svc.Run(context.Background(), []string{"u1"}, BatchOptions{Workers: -3})
	if err == nil {
		t.Fatal("expected error for negative workers")
	}
}

func TestBatchRunClampsWorkerCount(t *testing.T) {
	dl := &mockDownloader{delay: 5 * time.Millisecond}
	rep := &mockReporter{}
	svc := newBatchService(dl, rep)

	urls := make([]string, 30)
	for i := range urls {
		urls[i] = "url-" + string(rune('a'+i%26)) + string(rune('0'+i/26))
	}

	summary, err := svc.Run(context.Background(), urls, BatchOptions{Workers: 20})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Succeeded != len(urls) {
		t.Errorf("Succeeded = %d, want %d", summary.Succeeded, len(urls))
	}
	if !rep.hasWarningContaining("exceeds maximum") {
		t.Error("expected a clamp warning")
	}
	if max := dl.maxInFlight.Load(); max > MaxWorkers {
		t.Errorf("observed %d concurrent downloads, cap is %d", max, MaxWorkers)
	}
}

// The same mixed workload must produce identical tallies at any worker count.
func TestBatchRunMixedOutcomesAcrossWorkerCounts(t *testing.T) {
	urls := []string{"good-1", "bad-1", "good-2"}

	for _, workers := range []int{1, 2, 3} {
		dl := &mockDownloader{
			failWith: map[string]error{"bad-1": errors.New("server said no")},
		}
		svc := newBatchService(dl, &mockReporter{})

		summary, err := svc.Run(context.Background(), urls, BatchOptions{Workers: workers})
		if err != nil {
			t.Fatalf("workers=%d: Run: %v", workers, err)
		}
		if summary.Total != 3 || summary.Succeeded != 2 || summary.Failed != 1 {
			t.Errorf("workers=%d: summary = %d/%d succeeded, %d failed; want 2/3 and 1",
				workers, summary.Succeeded, summary.Total, summary.Failed)
		}
		if len(summary.Failures) != 1 || summary.Failures[0].Source != "bad-1" {
			t.Errorf("workers=%d: failures = %+v", workers, summary.Failures)
		}
		if got := dl.calls.Load(); got != 3 {
			t.Errorf("workers=%d: download calls = %d, want 3", workers, got)
		}
		if max := dl.maxInFlight.Load(); int(max) > workers {
			t.Errorf("workers=%d: observed %d concurrent downloads", workers, max)
		}
	}
}

func TestBatchRunConcurrencyNeverExceedsRequested(t *testing.T) {
	dl := &mockDownloader{delay: 5 * time.Millisecond}
	svc := newBatchService(dl, &mockReporter{})

	urls := make([]string, 12)
	for i := range urls {
		urls[i] = "u" + string(rune('a'+i))
	}

	if _, err := svc.Run(context.Background(), urls, BatchOptions{Workers: 3}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if max := dl.maxInFlight.Load(); max > 3 {
		t.Errorf("observed %d concurrent downloads, requested 3", max)
	}
}

// A worker panic must become one failed result, not a crashed process.
func TestBatchRunRecoversWorkerPanic(t *testing.T) {
	dl := &mockDownloader{panicOn: "toxic"}
	svc := newBatchService(dl, &mockReporter{})

	summary, err := svc.Run(context.Background(), []string{"ok-1", "toxic", "ok-2"}, BatchOptions{Workers: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Failed != 1 || summary.Succeeded != 2 {
		t.Errorf("summary = %d succeeded, %d failed; want 2 and 1", summary.Succeeded, summary.Failed)
	}
	if len(summary.Failures) != 1 || summary.Failures[0].Source != "toxic" {
		t.Errorf("failures = %+v", summary.Failures)
	}
	if !strings.Contains(summary.Failures[0].Message, "unexpected failure") {
		t.Errorf("panic message not surfaced: %q", summary.Failures[0].Message)
	}
}

// The callback fires once per item with a snapshot taken after that item was
// recorded, so completion never lags behind the observed results.
func TestBatchRunOnResultCallback(t *testing.T) {
	dl := &mockDownloader{failWith: map[string]error{"bad": errors.New("nope")}}
	svc := newBatchService(dl, &mockReporter{})

	var mu sync.Mutex
	var seen []DownloadResult
	opts := BatchOptions{
		Workers: 2,
		OnResult: func(res DownloadResult, status TrackerStatus) {
			mu.Lock()
			defer mu.Unlock()
			if status.Completed < len(seen)+1 {
				t.Errorf("status.Completed = %d with %d callbacks already seen", status.Completed, len(seen))
			}
			seen = append(seen, res)
		},
	}

	if _, err := svc.Run(context.Background(), []string{"a", "bad", "b"}, opts); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(seen) != 3 {
		t.Fatalf("callback fired %d times, want 3", len(seen))
	}
	var failures int
	for _, res := range seen {
		if !res.Succeeded {
			failures++
			if res.Source != "bad" {
				t.Errorf("failed result for %q", res.Source)
			}
		}
	}
	if failures != 1 {
		t.Errorf("failures seen = %d, want 1", failures)
	}
}

// The summary is only built after the full barrier, so its counts always
// cover every submitted URL.
func TestBatchRunSummaryCoversAllItems(t *testing.T) {
	dl := &mockDownloader{
		delay:    2 * time.Millisecond,
		failWith: map[string]error{"f1": errors.New("x"), "f2": errors.New("y")},
	}
	svc := newBatchService(dl, &mockReporter{})

	urls := []string{"a", "f1", "b", "c", "f2", "d"}
	summary, err := svc.Run(context.Background(), urls, BatchOptions{Workers: 4})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Succeeded+summary.Failed != len(urls) {
		t.Errorf("succeeded %d + failed %d != total %d", summary.Succeeded, summary.Failed, len(urls))
	}
	if summary.Elapsed <= 0 {
		t.Error("Elapsed not measured")
	}
	if summary.PerItem() <= 0 {
		t.Error("PerItem not derived")
	}
}
