package jobtrace

import (
	"fmt"
	"time"
)

// Snapshot is a read-only view of a job at the moment an event fires.
// The job system builds it before publishing; this package never mutates it.
type Snapshot struct {
	Class                string
	ID                   string
	Queue                string
	Args                 []any
	ScheduledAt          time.Time
	EnqueuedAt           time.Time
	Executions           int
	SkipArgumentLogging  bool
	SuccessfullyEnqueued bool
}

// ExceptionInfo describes a failure carried in an event payload.
type ExceptionInfo struct {
	Class     string
	Message   string
	Backtrace []string
}

// Exception builds an ExceptionInfo from a Go error, using the error's
// dynamic type as the class. Returns nil for a nil error.
func Exception(err error) *ExceptionInfo {
	if err == nil {
		return nil
	}
	return &ExceptionInfo{
		Class:   fmt.Sprintf("%T", err),
		Message: err.Error(),
	}
}

// GlobalIdentifiable is implemented by argument values that can be logged as
// a stable global identifier instead of their full representation.
type GlobalIdentifiable interface {
	GlobalID() (string, error)
}

// AdapterNamer is implemented by queue adapters that report their own display
// name.
type AdapterNamer interface {
	AdapterName() string
}
