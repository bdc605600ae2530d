// Package backtrace locates the application frame behind an instrumented
// call by filtering a captured call stack through a cleaning policy.
//
// A Policy is an ordered list of silencer rules; a frame survives when no rule
// matches it. First walks a lazily produced frame sequence and returns the
// first surviving frame, so deep stacks cost only as many symbolizations as it
// takes to get past the infrastructure frames on top.
//
//	policy := backtrace.New(
//	    backtrace.Silence(`^runtime\.`),
//	    backtrace.Silence(`github\.com/dmitrymomot/jobtrace`),
//	)
//
//	if frame, ok := backtrace.First(backtrace.Callers(1), policy); ok {
//	    log.Info("enqueued from " + frame.String())
//	}
//
// Policies are immutable after construction and safe for concurrent use.
// Deployment-specific silencers can be loaded from YAML with Load.
package backtrace
