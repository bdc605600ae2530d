package riverlog

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/riverqueue/river/rivertype"

	"github.com/dmitrymomot/jobtrace"
	"github.com/dmitrymomot/jobtrace/pkg/notify"
)

// SnapshotFromJob converts a River job row into a jobtrace snapshot.
// Encoded args that fail to decode are omitted rather than reported; the
// snapshot is for logging, not execution.
func SnapshotFromJob(job *rivertype.JobRow) jobtrace.Snapshot {
	if job == nil {
		return jobtrace.Snapshot{}
	}
	return jobtrace.Snapshot{
		Class:       job.Kind,
		ID:          strconv.FormatInt(job.ID, 10),
		Queue:       job.Queue,
		Args:        decodeArgs(job.EncodedArgs),
		ScheduledAt: job.ScheduledAt,
		EnqueuedAt:  job.CreatedAt,
		Executions:  job.Attempt,
	}
}

// ExceptionFromAttemptError converts a River attempt error, splitting its
// trace into backtrace lines.
func ExceptionFromAttemptError(ae rivertype.AttemptError) *jobtrace.ExceptionInfo {
	var backtrace []string
	if trace := strings.TrimSpace(ae.Trace); trace != "" {
		backtrace = strings.Split(trace, "\n")
	}
	return &jobtrace.ExceptionInfo{
		Class:     "rivertype.AttemptError",
		Message:   ae.Error,
		Backtrace: backtrace,
	}
}

// PublishInserted publishes one enqueue_all event for a batched insert.
// Rows skipped as unique duplicates count as not enqueued, matching River's
// own accounting of performed work.
func PublishInserted(bus *notify.Bus, adapter any, results []*rivertype.JobInsertResult) {
	jobs := make([]jobtrace.Snapshot, 0, len(results))
	enqueued := 0
	for _, res := range results {
		if res == nil {
			continue
		}
		snap := SnapshotFromJob(res.Job)
		snap.SuccessfullyEnqueued = !res.UniqueSkippedAsDuplicate
		if snap.SuccessfullyEnqueued {
			enqueued++
		}
		jobs = append(jobs, snap)
	}

	bus.Publish(notify.Event{
		Name: jobtrace.EventEnqueueAll,
		Payload: jobtrace.EnqueueAllPayload{
			Adapter:       adapter,
			Jobs:          jobs,
			EnqueuedCount: enqueued,
		},
	})
}

// decodeArgs decodes River's JSON args best-effort: arrays become the
// argument list, a single object or scalar becomes a one-element list.
func decodeArgs(encoded []byte) []any {
	if len(encoded) == 0 {
		return nil
	}
	var value any
	if err := json.Unmarshal(encoded, &value); err != nil {
		return nil
	}
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		return v
	default:
		return []any{v}
	}
}
