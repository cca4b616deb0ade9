package backup

import (
	"log/slog"
	"time"

	"github.com/znzinc01/FFXIV-BackupManager/internal/logging"
	"github.com/znzinc01/FFXIV-BackupManager/internal/selector"
)

// Clock abstracts time retrieval so archive names are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Engine creates and restores backup archives.
// It holds no mutable state; operations are meant to run one at a time.
type Engine struct {
	selector *selector.Selector
	clock    Clock
	logger   *slog.Logger
	staged   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithSelector sets the rule deciding which directories are game state.
func WithSelector(s *selector.Selector) Option {
	return func(e *Engine) {
		if s != nil {
			e.selector = s
		}
	}
}

// WithClock sets the clock used to name archives.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithStagedRestore makes Restore extract into a staging directory before
// touching the target.
func WithStagedRestore(staged bool) Option {
	return func(e *Engine) {
		e.staged = staged
	}
}

// NewEngine creates an Engine with the given options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		selector: selector.Default(),
		clock:    systemClock{},
		logger:   logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
