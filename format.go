package jobtrace

import (
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/jobtrace/pkg/notify"
)

// record is one formatted line awaiting emission.
type record struct {
	message string
	level   slog.Level
}

// formatter turns an event into a record. The second return is false when the
// event carries no payload this formatter understands; such events are
// dropped silently rather than surfaced as errors.
type formatter func(e notify.Event) (record, bool)

func (s *Subscriber) formatEnqueue(e notify.Event) (record, bool) {
	p, ok := e.Payload.(EnqueuePayload)
	if !ok {
		return record{}, false
	}
	return s.enqueueRecord(p.Job, p.Adapter, p.Exception, p.Aborted, "")
}

func (s *Subscriber) formatEnqueueAt(e notify.Event) (record, bool) {
	p, ok := e.Payload.(EnqueueAtPayload)
	if !ok {
		return record{}, false
	}
	return s.enqueueRecord(p.Job, p.Adapter, p.Exception, p.Aborted, formatTime(p.Job.ScheduledAt))
}

// enqueueRecord covers both immediate and scheduled enqueues; scheduledAt is
// empty for the immediate case.
func (s *Subscriber) enqueueRecord(job Snapshot, adapter any, exc *ExceptionInfo, aborted bool, scheduledAt string) (record, bool) {
	queue := s.queueName(adapter, job)

	switch classify(exc, aborted) {
	case outcomeFailed:
		return record{
			level:   slog.LevelError,
			message: fmt.Sprintf("Failed enqueuing %s to %s: %s", jobInfo(job, false), queue, exceptionInfo(exc, false)),
		}, true
	case outcomeAborted:
		// An intentional halt, not a crash, so it stays at info.
		return record{
			level:   slog.LevelInfo,
			message: fmt.Sprintf("Failed enqueuing %s to %s, a before_enqueue callback halted the enqueuing execution.", jobInfo(job, false), queue),
		}, true
	default:
		msg := fmt.Sprintf("Enqueued %s to %s", jobInfo(job, true), queue)
		if scheduledAt != "" {
			msg += " at " + scheduledAt
		}
		return record{
			level:   slog.LevelInfo,
			message: msg + " " + argsInfo(job),
		}, true
	}
}

func (s *Subscriber) formatEnqueueAll(e notify.Event) (record, bool) {
	p, ok := e.Payload.(EnqueueAllPayload)
	if !ok {
		return record{}, false
	}
	// Partial failures fold into the message body; the line stays at info
	// because some work did succeed.
	return record{level: slog.LevelInfo, message: s.enqueueAllMessage(p)}, true
}

func (s *Subscriber) formatPerformStart(e notify.Event) (record, bool) {
	p, ok := e.Payload.(PerformStartPayload)
	if !ok {
		return record{}, false
	}
	return record{
		level:   slog.LevelInfo,
		message: fmt.Sprintf("Performing %s from %s %s", jobInfo(p.Job, true), s.queueName(p.Adapter, p.Job), argsInfo(p.Job)),
	}, true
}

func (s *Subscriber) formatPerform(e notify.Event) (record, bool) {
	p, ok := e.Payload.(PerformPayload)
	if !ok {
		return record{}, false
	}
	queue := s.queueName(p.Adapter, p.Job)
	elapsed := durationMS(e.Duration)

	switch classify(p.Exception, p.Aborted) {
	case outcomeFailed:
		return record{
			level:   slog.LevelError,
			message: fmt.Sprintf("Error performing %s from %s in %s: %s", jobInfo(p.Job, true), queue, elapsed, exceptionInfo(p.Exception, true)),
		}, true
	case outcomeAborted:
		return record{
			level:   slog.LevelError,
			message: fmt.Sprintf("Error performing %s from %s in %s: a before_perform callback halted the job execution", jobInfo(p.Job, true), queue, elapsed),
		}, true
	default:
		return record{
			level:   slog.LevelInfo,
			message: fmt.Sprintf("Performed %s from %s in %s", jobInfo(p.Job, true), queue, elapsed),
		}, true
	}
}

func (s *Subscriber) formatEnqueueRetry(e notify.Event) (record, bool) {
	p, ok := e.Payload.(RetryPayload)
	if !ok {
		return record{}, false
	}
	if p.Exception != nil {
		return record{
			level: slog.LevelInfo,
			message: fmt.Sprintf("Retrying %s after %s in %s, due to a %s.",
				jobInfo(p.Job, true), attempts(p.Job), waitSeconds(p.Wait), exceptionInfo(p.Exception, false)),
		}, true
	}
	return record{
		level:   slog.LevelInfo,
		message: fmt.Sprintf("Retrying %s after %s in %s.", jobInfo(p.Job, true), attempts(p.Job), waitSeconds(p.Wait)),
	}, true
}

func (s *Subscriber) formatRetryStopped(e notify.Event) (record, bool) {
	p, ok := e.Payload.(RetryStoppedPayload)
	if !ok {
		return record{}, false
	}
	return record{
		level: slog.LevelError,
		message: fmt.Sprintf("Stopped retrying %s due to a %s, which reoccurred on %s.",
			jobInfo(p.Job, true), exceptionInfo(p.Exception, false), attempts(p.Job)),
	}, true
}

func (s *Subscriber) formatDiscard(e notify.Event) (record, bool) {
	p, ok := e.Payload.(DiscardPayload)
	if !ok {
		return record{}, false
	}
	return record{
		level:   slog.LevelError,
		message: fmt.Sprintf("Discarded %s due to a %s.", jobInfo(p.Job, true), exceptionInfo(p.Exception, false)),
	}, true
}

// queueName renders "<AdapterDisplayName>(<queue>)".
func (s *Subscriber) queueName(adapter any, job Snapshot) string {
	return fmt.Sprintf("%s(%s)", s.resolve(adapter), job.Queue)
}

// resolveAdapter maps an opaque adapter handle to a display name.
func resolveAdapter(adapter any) string {
	switch x := adapter.(type) {
	case nil:
		return ""
	case AdapterNamer:
		return x.AdapterName()
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%T", adapter)
	}
}
