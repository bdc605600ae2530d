package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls a slog attribute out of a context. Extractors run on
// every log call so request- or job-scoped values stay fresh.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type ctxKey int

const eventIDKey ctxKey = iota

// WithEventID stamps the lifecycle event ID a worker is processing into the
// context, for later extraction by EventIDExtractor.
func WithEventID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, eventIDKey, id)
}

// EventIDExtractor returns an extractor that adds the event_id attribute when
// the context carries one.
func EventIDExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := ctx.Value(eventIDKey).(string); ok && id != "" {
			return slog.String("event_id", id), true
		}
		return slog.Attr{}, false
	}
}

// decoratedHandler wraps a slog.Handler and injects context-extracted
// attributes into every record before delegating.
type decoratedHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// Decorate wraps a handler with context extractors. Nil extractors are
// filtered out so misconfigured options cannot panic at log time.
func Decorate(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &decoratedHandler{next: next, extractors: clean}
}

func (h *decoratedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *decoratedHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *decoratedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &decoratedHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *decoratedHandler) WithGroup(name string) slog.Handler {
	return &decoratedHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
