package tui

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("77"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// StyledReporter renders status lines with color. Worker goroutines report
// concurrently, so writes are serialized.
type StyledReporter struct {
	mu    sync.Mutex
	quiet bool
}

// NewStyledReporter creates a reporter; quiet suppresses status lines but
// keeps warnings.
func NewStyledReporter(quiet bool) *StyledReporter {
	return &StyledReporter{quiet: quiet}
}

func (r *StyledReporter) Status(msg string) {
	if r.quiet {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Println(msg)
}

func (r *StyledReporter) Warn(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Println(warnStyle.Render("warning: " + msg))
}
