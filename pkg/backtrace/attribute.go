package backtrace

import (
	"fmt"
	"iter"
	"runtime"
)

// Frame is a single resolved call-stack entry.
type Frame struct {
	Function string
	File     string
	Line     int
}

// String renders the frame as "<file>:<line> in <function>".
func (f Frame) String() string {
	return fmt.Sprintf("%s:%d in %s", f.File, f.Line, f.Function)
}

// maxDepth bounds stack capture; enqueue sites deeper than this are
// effectively anonymous.
const maxDepth = 64

// Callers captures the calling goroutine's stack and returns it as a lazily
// symbolized frame sequence. skip counts frames to omit above the caller of
// Callers, so skip == 0 starts at that caller.
//
// Program counters are collected eagerly (cheap); symbol resolution happens
// per frame as the sequence is consumed.
func Callers(skip int) iter.Seq[Frame] {
	pcs := make([]uintptr, maxDepth)
	// +2 skips runtime.Callers and Callers itself.
	n := runtime.Callers(skip+2, pcs)

	return func(yield func(Frame) bool) {
		frames := runtime.CallersFrames(pcs[:n])
		for {
			fr, more := frames.Next()
			if fr.PC != 0 {
				if !yield(Frame{Function: fr.Function, File: fr.File, Line: fr.Line}) {
					return
				}
			}
			if !more {
				return
			}
		}
	}
}

// First returns the first frame of the sequence surviving the policy.
// Iteration stops as soon as a survivor is found, so no more frames are
// symbolized or cleaned than necessary. Returns false when every frame is
// silenced.
func First(frames iter.Seq[Frame], policy *Policy) (Frame, bool) {
	for f := range frames {
		if policy.Keep(f) {
			return f, true
		}
	}
	return Frame{}, false
}
