package ports

// Reporter is the status sink the core components write through. The core
// never knows whether output is plain text or styled; that choice lives
// entirely in the CLI layer.
type Reporter interface {
	// Status reports normal progress, one line per call.
	Status(msg string)

	// Warn reports a non-fatal degradation, such as a format fallback.
	Warn(msg string)
}

// NopReporter discards everything; useful in tests.
type NopReporter struct{}

func (NopReporter) Status(string) {}
func (NopReporter) Warn(string)   {}
