package application

import (
	"sync"
	"time"
)

// DownloadResult records the outcome of one download attempt. Immutable once
// created; ordering inside the tracker reflects completion order, not
// submission order.
type DownloadResult struct {
	Source    string
	Succeeded bool
	Message   string
	Elapsed   time.Duration
}

// TrackerStatus is an atomic point-in-time copy of the tracker's counters.
type TrackerStatus struct {
	Total     int
	Completed int
	Failed    int
	Succeeded int
}

// Tracker aggregates per-item outcomes across concurrent workers. It is the
// only shared mutable state in the batch path; every operation holds the
// mutex for the full read-modify-write and never across I/O.
type Tracker struct {
	mu        sync.Mutex
	total     int
	completed int
	failed    int
	results   []DownloadResult
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// SetTotal records the expected item count. Workers may report before this
// is called; only the summary's Total field depends on it.
func (t *Tracker) SetTotal(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total = n
}

// Record atomically registers one completed item.
func (t *Tracker) Record(res DownloadResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.completed++
	if !res.Succeeded {
		t.failed++
	}
	t.results = append(t.results, res)
}

// Status returns a consistent snapshot of the counters. It can never observe
// failed > completed because both are updated under one lock.
func (t *Tracker) Status() TrackerStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	return TrackerStatus{
		Total:     t.total,
		Completed: t.completed,
		Failed:    t.failed,
		Succeeded: t.completed - t.failed,
	}
}

// Results returns a copy of all recorded results, safe to iterate while
// workers keep recording.
func (t *Tracker) Results() []DownloadResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]DownloadResult, len(t.results))
	copy(out, t.results)
	return out
}

// Failures returns a copy of only the failed results.
func (t *Tracker) Failures() []DownloadResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	var failed []DownloadResult
	for _, r := range t.results {
		if !r.Succeeded {
			failed = append(failed, r)
		}
	}
	return failed
}
