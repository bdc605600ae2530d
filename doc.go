// Package jobtrace turns background job lifecycle events into deterministic,
// human-readable log lines.
//
// A job system publishes lifecycle events (enqueue, enqueue_at, enqueue_all,
// perform_start, perform, enqueue_retry, retry_stopped, discard) on a
// notification bus; the subscriber formats each into a single line at info or
// error severity and hands it to a logging sink. Formatting is pure and
// stateless, so the subscriber is safe to share across concurrently executing
// jobs.
//
// # Wiring
//
//	bus := notify.New()
//
//	sub := jobtrace.New(
//	    jobtrace.WithLogger(logger.New()),
//	    jobtrace.WithVerboseAttribution(),
//	)
//	sub.Attach(bus)
//
//	// The job system publishes events as work happens:
//	bus.Publish(notify.Event{
//	    Name: jobtrace.EventEnqueue,
//	    Payload: jobtrace.EnqueuePayload{
//	        Job:     jobtrace.Snapshot{Class: "SendWelcome", ID: "1f0", Queue: "default"},
//	        Adapter: "river",
//	    },
//	})
//	// => Enqueued SendWelcome (Job ID: 1f0) to river(default)
//
// # Outcomes and severities
//
// Every event payload carries its outcome: an exception means a hard failure
// (error severity), an aborted flag means a callback halted the operation
// (error for perform, info for enqueue, where the halt is intentional), and
// otherwise the operation succeeded (info). Terminal events (retry_stopped,
// discard) always log at error. Batched enqueues produce one info-level
// summary with per-class counts; partial failures fold into the message body.
//
// # Call-site attribution
//
// With WithVerboseAttribution, each emitted line is followed by the
// application frame that triggered the event, found by filtering the call
// stack through a cleaning policy (see pkg/backtrace):
//
//	Enqueued SendWelcome (Job ID: 1f0) to river(default)
//	↳ billing/charge.go:42 in myapp/billing.Charge
//
// # Deployment configuration
//
// FromEnv builds a subscriber from JOBTRACE_* environment variables (verbose
// toggle, per-event severity thresholds, extra silencer patterns) plus the
// SENTRY_* variables consumed by pkg/logger.
//
// # Failure containment
//
// Formatting never raises into the job pipeline: malformed payload fields
// degrade to empty fragments, unknown payload types are dropped, and a panic
// inside a formatter is recovered and reported as a single warning line.
package jobtrace
