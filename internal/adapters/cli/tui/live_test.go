package tui

import (
	"sync"
	"testing"
	"time"
)

func TestLiveProgressTallies(t *testing.T) {
	p := NewLiveProgress(3)

	p.Add("a", true, "downloaded", time.Second)
	p.Add("b", false, "network unreachable", time.Second)
	p.Add("c", true, "downloaded", time.Second)

	if got := p.Completed(); got != 3 {
		t.Errorf("Completed = %d, want 3", got)
	}
	if got := p.Failed(); got != 1 {
		t.Errorf("Failed = %d, want 1", got)
	}
}

func TestLiveProgressConcurrentAdds(t *testing.T) {
	p := NewLiveProgress(40)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p.Add("url", i%4 != 0, "", 0)
		}(i)
	}
	wg.Wait()

	if got := p.Completed(); got != 40 {
		t.Errorf("Completed = %d, want 40", got)
	}
	if got := p.Failed(); got != 10 {
		t.Errorf("Failed = %d, want 10", got)
	}
}

func TestNewLiveProgressNegativeTotal(t *testing.T) {
	p := NewLiveProgress(-1)
	p.Add("a", true, "", 0)
	if got := p.Completed(); got != 1 {
		t.Errorf("Completed = %d, want 1", got)
	}
}
