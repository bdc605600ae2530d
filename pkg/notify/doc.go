// Package notify provides a minimal synchronous notification bus for job
// lifecycle instrumentation.
//
// A job pipeline publishes named events on a Bus; subscribers receive them on
// the publishing goroutine, in subscription order. The bus carries opaque
// payloads so that emitters and subscribers agree on payload types per event
// name without the bus knowing about them.
//
// # Publishing
//
// Fire-and-forget events are published directly:
//
//	bus.Publish(notify.Event{
//	    Name:    "enqueue",
//	    Payload: payload,
//	})
//
// Operations with a measurable duration are wrapped with Instrument, which
// times the function and publishes the event after it returns:
//
//	err := bus.Instrument("perform", payload, func() error {
//	    return worker.Run(ctx, job)
//	})
//
// # Delivery
//
// Delivery is synchronous and unbuffered. Subscribers must not block; anything
// expensive belongs on the subscriber's side of a channel. A panicking
// subscriber does not prevent delivery to the remaining subscribers.
package notify
