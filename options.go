package resume2pdf

import (
	"log/slog"
	"time"
)

// defaultTimeout bounds one export, browser startup included.
const defaultTimeout = 60 * time.Second

// Option configures an Exporter.
type Option func(*Exporter)

// exporterConfig holds internal configuration for Exporter.
type exporterConfig struct {
	timeout    time.Duration
	logger     *slog.Logger
	observers  []Observer
	now        func() time.Time
	verify     bool
	stylesheet *string
	blank      BlankDetector
}

// WithTimeout sets the per-export timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("resume2pdf: WithTimeout duration must be positive")
	}
	return func(e *Exporter) {
		e.cfg.timeout = d
	}
}

// WithBrowser injects the rasterization capability.
// The Exporter takes ownership and closes it in Close.
func WithBrowser(b Browser) Option {
	return func(e *Exporter) {
		e.browser = b
	}
}

// WithSink sets where finished documents are delivered.
// Without a sink the PDF is only returned in Result.
func WithSink(s Sink) Option {
	return func(e *Exporter) {
		e.sink = s
	}
}

// WithLogger sets the structured logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.cfg.logger = l
		}
	}
}

// WithObserver registers a lifecycle observer. May be repeated.
func WithObserver(o Observer) Option {
	return func(e *Exporter) {
		if o != nil {
			e.cfg.observers = append(e.cfg.observers, o)
		}
	}
}

// WithClock overrides the time source used for {date} and filenames.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.cfg.now = now
		}
	}
}

// WithVerify re-reads every produced PDF and checks its page count.
func WithVerify(enabled bool) Option {
	return func(e *Exporter) {
		e.cfg.verify = enabled
	}
}

// WithStylesheet replaces the embedded export stylesheet.
// An empty css disables the override stylesheet but keeps the light theme.
func WithStylesheet(css string) Option {
	return func(e *Exporter) {
		e.cfg.stylesheet = &css
	}
}

// WithBlankDetector replaces the blank-slice thresholds.
func WithBlankDetector(d BlankDetector) Option {
	return func(e *Exporter) {
		e.cfg.blank = d
	}
}
