package jobtrace

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/jobtrace/pkg/logger"
)

// Sink receives formatted records. Log reports whether the message passed the
// sink's own threshold; the subscriber uses that to decide whether to chain
// the attribution line. Sinks must be safe for concurrent use.
type Sink interface {
	Enabled(level slog.Level) bool
	Log(level slog.Level, msg string) bool
}

type slogSink struct {
	log *slog.Logger
}

// NewSlogSink wraps a slog logger as a Sink. A nil logger discards
// everything.
func NewSlogSink(log *slog.Logger) Sink {
	if log == nil {
		log = logger.NewNope()
	}
	return &slogSink{log: log}
}

func (s *slogSink) Enabled(level slog.Level) bool {
	return s.log.Enabled(context.Background(), level)
}

func (s *slogSink) Log(level slog.Level, msg string) bool {
	if !s.log.Enabled(context.Background(), level) {
		return false
	}
	s.log.Log(context.Background(), level, msg)
	return true
}
