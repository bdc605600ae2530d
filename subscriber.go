package jobtrace

import (
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/jobtrace/pkg/backtrace"
	"github.com/dmitrymomot/jobtrace/pkg/notify"
)

// binding ties an event to its formatter and the minimum severity below which
// the formatter is skipped before any field extraction happens.
type binding struct {
	format    formatter
	threshold slog.Level
}

// Subscriber converts job lifecycle events into formatted log lines.
// Construct with New and wire to a bus with Attach. A subscriber is immutable
// after construction and safe for concurrent use; it holds no state across
// events.
type Subscriber struct {
	sink     Sink
	policy   *backtrace.Policy
	resolve  func(adapter any) string
	bindings map[string]binding
	verbose  bool
}

// New creates a subscriber. Without options it discards everything; pass
// WithLogger or WithSink to direct output somewhere useful.
func New(opts ...Option) *Subscriber {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Subscriber{
		sink:    cfg.sink,
		policy:  cfg.policy,
		resolve: cfg.resolve,
		verbose: cfg.verbose,
	}

	s.bindings = map[string]binding{
		EventEnqueue:      {format: s.formatEnqueue, threshold: cfg.levels[EventEnqueue]},
		EventEnqueueAt:    {format: s.formatEnqueueAt, threshold: cfg.levels[EventEnqueueAt]},
		EventEnqueueAll:   {format: s.formatEnqueueAll, threshold: cfg.levels[EventEnqueueAll]},
		EventPerformStart: {format: s.formatPerformStart, threshold: cfg.levels[EventPerformStart]},
		EventPerform:      {format: s.formatPerform, threshold: cfg.levels[EventPerform]},
		EventEnqueueRetry: {format: s.formatEnqueueRetry, threshold: cfg.levels[EventEnqueueRetry]},
		// Terminal failures are always worth the formatting work.
		EventRetryStopped: {format: s.formatRetryStopped, threshold: slog.LevelError},
		EventDiscard:      {format: s.formatDiscard, threshold: slog.LevelError},
	}

	return s
}

// Attach subscribes the formatter for every lifecycle event on the bus.
func (s *Subscriber) Attach(bus *notify.Bus) {
	for name := range s.bindings {
		bus.Subscribe(name, s.Handle)
	}
}

// Handle formats and emits one event. It is the handler Attach registers and
// may be called directly by job systems with their own dispatch. A failure
// inside formatting is contained here: observability is best-effort and must
// never take the job pipeline down with it.
func (s *Subscriber) Handle(e notify.Event) {
	defer func() {
		if r := recover(); r != nil {
			s.sink.Log(slog.LevelWarn, fmt.Sprintf("jobtrace: formatting %s event failed: %v", e.Name, r))
		}
	}()

	b, ok := s.bindings[e.Name]
	if !ok {
		return
	}
	// Threshold guard: a disabled severity costs nothing beyond this check.
	if !s.sink.Enabled(b.threshold) {
		return
	}

	rec, ok := b.format(e)
	if !ok {
		return
	}
	s.logAndAttribute(rec.level, rec.message)
}

// logAndAttribute emits the record and, when verbose attribution is on and
// the sink accepted the line, chains the enqueue call site immediately after
// it. Every formatter goes through here so the attribution behavior lives in
// one place. Attribution failure (every frame silenced) is silent.
func (s *Subscriber) logAndAttribute(level slog.Level, msg string) {
	if !s.sink.Log(level, normalize(msg)) {
		return
	}
	if !s.verbose {
		return
	}
	if frame, ok := backtrace.First(backtrace.Callers(1), s.policy); ok {
		s.sink.Log(slog.LevelInfo, "↳ "+frame.String())
	}
}

// DefaultPolicy silences this module's own frames plus the runtime, so
// attribution lands on the application code that triggered the event.
func DefaultPolicy() *backtrace.Policy {
	return backtrace.New(
		backtrace.Silence(`github\.com/dmitrymomot/jobtrace`),
		backtrace.SilencePrefix("runtime."),
		backtrace.SilencePrefix("log/slog."),
	)
}
