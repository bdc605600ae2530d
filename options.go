package jobtrace

import (
	"log/slog"

	"github.com/dmitrymomot/jobtrace/pkg/backtrace"
)

// config holds subscriber configuration.
type config struct {
	sink    Sink
	policy  *backtrace.Policy
	resolve func(adapter any) string
	levels  map[string]slog.Level
	verbose bool
}

// newConfig creates a config with defaults: a discarding sink, the default
// cleaning policy, and info thresholds for every configurable event.
func newConfig() *config {
	return &config{
		sink:    NewSlogSink(nil),
		policy:  DefaultPolicy(),
		resolve: resolveAdapter,
		levels: map[string]slog.Level{
			EventEnqueue:      slog.LevelInfo,
			EventEnqueueAt:    slog.LevelInfo,
			EventEnqueueAll:   slog.LevelInfo,
			EventPerformStart: slog.LevelInfo,
			EventPerform:      slog.LevelInfo,
			EventEnqueueRetry: slog.LevelInfo,
		},
	}
}

// Option configures the subscriber.
type Option func(*config)

// WithSink directs formatted records to the given sink.
func WithSink(sink Sink) Option {
	return func(c *config) {
		if sink != nil {
			c.sink = sink
		}
	}
}

// WithLogger is a convenience for WithSink(NewSlogSink(log)).
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.sink = NewSlogSink(log)
		}
	}
}

// WithVerboseAttribution chains the enqueue call site after every emitted
// line:
//
//	Enqueued SendWelcome (Job ID: 1f0) to river(default)
//	↳ billing/charge.go:42 in myapp/billing.Charge
func WithVerboseAttribution() Option {
	return func(c *config) {
		c.verbose = true
	}
}

// WithPolicy replaces the frame cleaning policy used for attribution.
func WithPolicy(policy *backtrace.Policy) Option {
	return func(c *config) {
		if policy != nil {
			c.policy = policy
		}
	}
}

// WithEventLevel overrides the minimum severity threshold for one event.
// retry_stopped and discard are pinned to error and cannot be overridden.
func WithEventLevel(event string, level slog.Level) Option {
	return func(c *config) {
		if _, ok := c.levels[event]; ok {
			c.levels[event] = level
		}
	}
}

// WithAdapterResolver replaces how opaque adapter handles are mapped to
// display names. The default understands AdapterNamer, fmt.Stringer, and
// plain strings.
func WithAdapterResolver(resolve func(adapter any) string) Option {
	return func(c *config) {
		if resolve != nil {
			c.resolve = resolve
		}
	}
}
