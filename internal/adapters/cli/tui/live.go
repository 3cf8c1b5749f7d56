package tui

import (
	"fmt"
	"sync"
	"time"
)

// itemResult is one finished download as shown in the live view.
type itemResult struct {
	Source    string
	Succeeded bool
	Message   string
	Elapsed   time.Duration
}

// maxVisibleResults bounds the redrawn block so long batches do not scroll
// the terminal on every update.
const maxVisibleResults = 10

// LiveProgress renders an in-place updating block for a running batch: a
// progress bar line followed by the most recent results. Add is safe to call
// from concurrent workers.
type LiveProgress struct {
	mu       sync.Mutex
	total    int
	results  []itemResult
	failed   int
	rendered bool
}

// NewLiveProgress creates a live progress view for total items.
func NewLiveProgress(total int) *LiveProgress {
	if total < 0 {
		total = 0
	}
	return &LiveProgress{total: total}
}

// Add registers one finished item and redraws the block.
func (p *LiveProgress) Add(source string, succeeded bool, message string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.results = append(p.results, itemResult{
		Source:    source,
		Succeeded: succeeded,
		Message:   message,
		Elapsed:   elapsed,
	})
	if !succeeded {
		p.failed++
	}
	p.render()
}

// Completed returns how many items have finished.
func (p *LiveProgress) Completed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.results)
}

// Failed returns how many finished items failed.
func (p *LiveProgress) Failed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failed
}

func (p *LiveProgress) render() {
	visible := len(p.results)
	if visible > maxVisibleResults {
		visible = maxVisibleResults
	}

	if p.rendered {
		// Move the cursor back over the previously drawn block and clear it.
		fmt.Printf("\033[%dA\033[J", p.lastBlockHeight())
	}

	completed := len(p.results)
	percent := 0
	if p.total > 0 {
		percent = completed * 100 / p.total
	}
	fmt.Printf("Downloading %d/%d %s %d%%\n",
		completed, p.total, renderProgressBar(completed, p.total, 20), percent)

	for _, r := range p.results[len(p.results)-visible:] {
		if r.Succeeded {
			fmt.Println(okStyle.Render(fmt.Sprintf("✓ %s (%.1fs)", r.Source, r.Elapsed.Seconds())))
		} else {
			fmt.Println(failStyle.Render(fmt.Sprintf("✗ %s: %s", r.Source, r.Message)))
		}
	}

	p.rendered = true
}

// lastBlockHeight is the line count of the block drawn by the previous
// render call: the bar plus the results that were visible then.
func (p *LiveProgress) lastBlockHeight() int {
	prev := len(p.results) - 1
	if prev > maxVisibleResults {
		prev = maxVisibleResults
	}
	return 1 + prev
}
