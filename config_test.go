package jobtrace_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jobtrace"
	"github.com/dmitrymomot/jobtrace/pkg/notify"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("JOBTRACE_VERBOSE_ATTRIBUTION", "true")
	t.Setenv("JOBTRACE_EVENT_LEVELS", "perform_start:error,enqueue:info")
	t.Setenv("JOBTRACE_SILENCERS", "internal/queue,myapp/platform")

	cfg, err := jobtrace.LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.VerboseAttribution)
	assert.Equal(t, map[string]string{"perform_start": "error", "enqueue": "info"}, cfg.EventLevels)
	assert.Equal(t, []string{"internal/queue", "myapp/platform"}, cfg.Silencers)
}

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	t.Run("valid config produces options", func(t *testing.T) {
		t.Parallel()

		cfg := jobtrace.Config{
			VerboseAttribution: true,
			EventLevels:        map[string]string{"perform_start": "error"},
			Silencers:          []string{`internal/queue`},
		}

		opts, err := cfg.Options()
		require.NoError(t, err)
		assert.NotEmpty(t, opts)
		assert.NotPanics(t, func() {
			jobtrace.New(opts...)
		})
	})

	t.Run("unknown level is rejected", func(t *testing.T) {
		t.Parallel()

		cfg := jobtrace.Config{EventLevels: map[string]string{"perform": "loud"}}

		_, err := cfg.Options()
		assert.ErrorIs(t, err, jobtrace.ErrInvalidConfig)
	})

	t.Run("invalid silencer pattern is rejected", func(t *testing.T) {
		t.Parallel()

		cfg := jobtrace.Config{Silencers: []string{`[`}}

		_, err := cfg.Options()
		assert.ErrorIs(t, err, jobtrace.ErrInvalidConfig)
	})

	t.Run("event level override takes effect", func(t *testing.T) {
		t.Parallel()

		cfg := jobtrace.Config{EventLevels: map[string]string{"perform_start": "error"}}
		opts, err := cfg.Options()
		require.NoError(t, err)

		// An error-only sink still admits perform_start once its threshold is
		// raised, but the record itself is info and gets rejected there.
		sink := &captureSink{min: slog.LevelError}
		bus := notify.New()
		jobtrace.New(append(opts, jobtrace.WithSink(sink))...).Attach(bus)

		bus.Publish(notify.Event{
			Name:    jobtrace.EventPerformStart,
			Payload: jobtrace.PerformStartPayload{Job: myJob, Adapter: "Async"},
		})
		assert.Empty(t, sink.lines)
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv("SENTRY_DSN", "")

	t.Run("builds a working subscriber", func(t *testing.T) {
		sub, err := jobtrace.FromEnv()
		require.NoError(t, err)
		require.NotNil(t, sub)
	})

	t.Run("explicit options win", func(t *testing.T) {
		sink := &captureSink{min: slog.LevelInfo}
		sub, err := jobtrace.FromEnv(jobtrace.WithSink(sink))
		require.NoError(t, err)

		sub.Handle(notify.Event{
			Name:    jobtrace.EventEnqueue,
			Payload: jobtrace.EnqueuePayload{Job: myJob, Adapter: "Async"},
		})

		require.Len(t, sink.lines, 1)
	})
}
