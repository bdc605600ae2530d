package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jobtrace/pkg/logger"
)

func TestDecorate(t *testing.T) {
	t.Parallel()

	t.Run("injects extracted attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		handler := slog.NewJSONHandler(&buf, nil)
		log := slog.New(logger.Decorate(handler, logger.EventIDExtractor()))

		ctx := logger.WithEventID(context.Background(), "evt-123")
		log.InfoContext(ctx, "performed job")

		assert.Contains(t, buf.String(), `"event_id":"evt-123"`)
	})

	t.Run("skips attribute without event ID", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		handler := slog.NewJSONHandler(&buf, nil)
		log := slog.New(logger.Decorate(handler, logger.EventIDExtractor()))

		log.Info("performed job")

		assert.NotContains(t, buf.String(), "event_id")
	})

	t.Run("filters nil extractors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		handler := slog.NewJSONHandler(&buf, nil)
		log := slog.New(logger.Decorate(handler, nil, logger.EventIDExtractor()))

		require.NotPanics(t, func() {
			log.Info("performed job")
		})
		assert.Contains(t, buf.String(), "performed job")
	})

	t.Run("preserves WithAttrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		handler := slog.NewJSONHandler(&buf, nil)
		log := slog.New(logger.Decorate(handler)).With(slog.String("queue", "default"))

		log.Info("performed job")

		assert.Contains(t, buf.String(), `"queue":"default"`)
	})
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	assert.NotPanics(t, func() {
		log.Error("discarded")
	})
}

func TestNewWithSentry_EmptyDSN(t *testing.T) {
	t.Parallel()

	log := logger.NewWithSentry(logger.SentryConfig{})
	require.NotNil(t, log)
	assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
}
