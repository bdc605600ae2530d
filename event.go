package jobtrace

import "time"

// Lifecycle event names published by the job system and consumed by the
// subscriber.
const (
	EventEnqueue      = "enqueue"
	EventEnqueueAt    = "enqueue_at"
	EventEnqueueAll   = "enqueue_all"
	EventPerformStart = "perform_start"
	EventPerform      = "perform"
	EventEnqueueRetry = "enqueue_retry"
	EventRetryStopped = "retry_stopped"
	EventDiscard      = "discard"
)

// EnqueuePayload accompanies EventEnqueue.
type EnqueuePayload struct {
	Adapter   any
	Exception *ExceptionInfo
	Job       Snapshot
	Aborted   bool
}

// EnqueueAtPayload accompanies EventEnqueueAt for jobs scheduled to run later.
type EnqueueAtPayload struct {
	Adapter   any
	Exception *ExceptionInfo
	Job       Snapshot
	Aborted   bool
}

// EnqueueAllPayload accompanies EventEnqueueAll for one batched enqueue call.
// EnqueuedCount is the number of submissions the backend confirmed; it is
// reported by the backend and is not derived from the per-job flags.
type EnqueueAllPayload struct {
	Adapter       any
	Jobs          []Snapshot
	EnqueuedCount int
}

// PerformStartPayload accompanies EventPerformStart.
type PerformStartPayload struct {
	Adapter any
	Job     Snapshot
}

// PerformPayload accompanies EventPerform.
type PerformPayload struct {
	Adapter   any
	Exception *ExceptionInfo
	Job       Snapshot
	Aborted   bool
}

// RetryPayload accompanies EventEnqueueRetry.
type RetryPayload struct {
	Adapter   any
	Exception *ExceptionInfo
	Job       Snapshot
	Wait      time.Duration
}

// RetryStoppedPayload accompanies EventRetryStopped.
type RetryStoppedPayload struct {
	Adapter   any
	Exception *ExceptionInfo
	Job       Snapshot
}

// DiscardPayload accompanies EventDiscard.
type DiscardPayload struct {
	Adapter   any
	Exception *ExceptionInfo
	Job       Snapshot
}

// outcome is the per-event result, decided once and switched on exhaustively
// by the formatters.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeAborted
	outcomeFailed
)

func classify(exc *ExceptionInfo, aborted bool) outcome {
	switch {
	case exc != nil:
		return outcomeFailed
	case aborted:
		return outcomeAborted
	default:
		return outcomeSuccess
	}
}
