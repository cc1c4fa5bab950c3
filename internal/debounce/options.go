package debounce

import (
	"log/slog"
	"time"

	"github.com/billie-coop/fastclick/internal/clock"
)

// DefaultWindow is calibrated to human double-tap speed.
const DefaultWindow = 500 * time.Millisecond

var defaultClock = clock.New()

type options struct {
	name     string
	window   time.Duration
	clock    clock.Clock
	logger   *slog.Logger
	observer Observer
}

// Option configures adapters, registries and scopes.
type Option func(*options)

// WithWindow sets the cooldown window for guards created by the component.
// Non-positive values select DefaultWindow.
func WithWindow(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.window = d
		}
	}
}

// WithClock replaces the time source.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger used for suppression and declaration messages.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver registers an observer notified of every decision.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithName labels an adapter in logs and observations.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func buildOptions(name string, opts []Option) options {
	o := options{
		name:     name,
		window:   DefaultWindow,
		clock:    defaultClock,
		logger:   slog.Default(),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With("component", "debounce")
	return o
}
