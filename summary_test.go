package jobtrace_test

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jobtrace"
	"github.com/dmitrymomot/jobtrace/pkg/notify"
)

func publishEnqueueAll(t *testing.T, p jobtrace.EnqueueAllPayload) *captureSink {
	t.Helper()
	sink := &captureSink{min: slog.LevelInfo}
	bus := notify.New()
	jobtrace.New(jobtrace.WithSink(sink)).Attach(bus)
	bus.Publish(notify.Event{Name: jobtrace.EventEnqueueAll, Payload: p})
	return sink
}

func batch(enqueued bool, classes ...string) []jobtrace.Snapshot {
	jobs := make([]jobtrace.Snapshot, len(classes))
	for i, class := range classes {
		jobs[i] = jobtrace.Snapshot{Class: class, Queue: "default", SuccessfullyEnqueued: enqueued}
	}
	return jobs
}

func TestEnqueueAllSummary(t *testing.T) {
	t.Parallel()

	t.Run("all confirmed", func(t *testing.T) {
		t.Parallel()

		sink := publishEnqueueAll(t, jobtrace.EnqueueAllPayload{
			Adapter:       "Async",
			Jobs:          batch(true, "A", "B", "A"),
			EnqueuedCount: 3,
		})

		require.Len(t, sink.lines, 1)
		assert.Equal(t, slog.LevelInfo, sink.lines[0].level)
		assert.Equal(t, "Enqueued 3 jobs to Async (2 A, 1 B)", sink.lines[0].msg)
		assert.NotContains(t, sink.lines[0].msg, "Failed")
	})

	t.Run("single job uses singular", func(t *testing.T) {
		t.Parallel()

		sink := publishEnqueueAll(t, jobtrace.EnqueueAllPayload{
			Adapter:       "Async",
			Jobs:          batch(true, "A"),
			EnqueuedCount: 1,
		})

		require.Len(t, sink.lines, 1)
		assert.Equal(t, "Enqueued 1 job to Async (1 A)", sink.lines[0].msg)
	})

	t.Run("partial failure", func(t *testing.T) {
		t.Parallel()

		jobs := batch(true, "A", "A")
		jobs = append(jobs, jobtrace.Snapshot{Class: "B", Queue: "default"})

		sink := publishEnqueueAll(t, jobtrace.EnqueueAllPayload{
			Adapter:       "Async",
			Jobs:          jobs,
			EnqueuedCount: 2,
		})

		require.Len(t, sink.lines, 1)
		assert.Equal(t, slog.LevelInfo, sink.lines[0].level, "partial failures stay at info")
		assert.Equal(t, "Enqueued 2 jobs to Async (2 A). Failed enqueuing 1 job", sink.lines[0].msg)
	})

	t.Run("partial failure pluralizes failures", func(t *testing.T) {
		t.Parallel()

		jobs := batch(true, "A")
		jobs = append(jobs, batch(false, "B", "B")...)

		sink := publishEnqueueAll(t, jobtrace.EnqueueAllPayload{
			Adapter:       "Async",
			Jobs:          jobs,
			EnqueuedCount: 1,
		})

		require.Len(t, sink.lines, 1)
		assert.Equal(t, "Enqueued 1 job to Async (1 A). Failed enqueuing 2 jobs", sink.lines[0].msg)
	})

	t.Run("zero successes", func(t *testing.T) {
		t.Parallel()

		sink := publishEnqueueAll(t, jobtrace.EnqueueAllPayload{
			Adapter:       "Async",
			Jobs:          batch(false, "A", "B", "C"),
			EnqueuedCount: 0,
		})

		require.Len(t, sink.lines, 1)
		assert.Equal(t, "Failed enqueuing 3 jobs to Async", sink.lines[0].msg)
	})

	t.Run("zero successes singular", func(t *testing.T) {
		t.Parallel()

		sink := publishEnqueueAll(t, jobtrace.EnqueueAllPayload{
			Adapter:       "Async",
			Jobs:          batch(false, "A"),
			EnqueuedCount: 0,
		})

		require.Len(t, sink.lines, 1)
		assert.Equal(t, "Failed enqueuing 1 job to Async", sink.lines[0].msg)
	})

	t.Run("breakdown sorted by descending count with stable ties", func(t *testing.T) {
		t.Parallel()

		sink := publishEnqueueAll(t, jobtrace.EnqueueAllPayload{
			Adapter:       "Async",
			Jobs:          batch(true, "B", "A", "A", "C", "C"),
			EnqueuedCount: 5,
		})

		require.Len(t, sink.lines, 1)
		assert.Equal(t, "Enqueued 5 jobs to Async (2 A, 2 C, 1 B)", sink.lines[0].msg)
	})

	t.Run("breakdown counts sum to total", func(t *testing.T) {
		t.Parallel()

		sink := publishEnqueueAll(t, jobtrace.EnqueueAllPayload{
			Adapter:       "Async",
			Jobs:          batch(true, "A", "B", "A", "B", "C"),
			EnqueuedCount: 5,
		})

		require.Len(t, sink.lines, 1)
		msg := sink.lines[0].msg
		inner := msg[strings.Index(msg, "(")+1 : strings.Index(msg, ")")]
		sum := 0
		for _, part := range strings.Split(inner, ", ") {
			var n int
			var class string
			_, err := fmt.Sscanf(part, "%d %s", &n, &class)
			require.NoError(t, err)
			sum += n
		}
		assert.Equal(t, 5, sum)
	})

	t.Run("confirmed count above flagged subset suppresses failed clause", func(t *testing.T) {
		t.Parallel()

		// The backend confirmed every submission but only one job carries the
		// flag; the failed count derives from the confirmed count, so no
		// "Failed enqueuing" clause appears.
		jobs := batch(true, "A")
		jobs = append(jobs, batch(false, "B", "C")...)

		sink := publishEnqueueAll(t, jobtrace.EnqueueAllPayload{
			Adapter:       "Async",
			Jobs:          jobs,
			EnqueuedCount: 3,
		})

		require.Len(t, sink.lines, 1)
		assert.Equal(t, "Enqueued 3 jobs to Async (1 A, 1 B, 1 C)", sink.lines[0].msg)
		assert.NotContains(t, sink.lines[0].msg, "Failed")
	})

	t.Run("empty batch", func(t *testing.T) {
		t.Parallel()

		sink := publishEnqueueAll(t, jobtrace.EnqueueAllPayload{Adapter: "Async"})

		require.Len(t, sink.lines, 1)
		assert.Equal(t, "Enqueued 0 jobs to Async", sink.lines[0].msg)
	})
}
