package jobtrace

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Field extractors pull displayable fragments out of event payloads. Missing
// optional fields yield an empty string; extractors never panic on absent
// data so that a sparse payload still produces a usable line.

var spaceRuns = regexp.MustCompile(` {2,}`)

// normalize collapses runs of spaces left behind by omitted fragments and
// trims the edges. Newlines are preserved for backtrace dumps.
func normalize(s string) string {
	return strings.TrimSpace(spaceRuns.ReplaceAllString(s, " "))
}

func durationMS(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
}

// waitSeconds truncates toward zero, matching how operators read retry
// delays.
func waitSeconds(d time.Duration) string {
	return fmt.Sprintf("%d seconds", int(d.Seconds()))
}

func attempts(job Snapshot) string {
	return fmt.Sprintf("%d attempts", job.Executions)
}

// formatTime renders a timestamp as ISO-8601 UTC with nanosecond precision.
// Zero times yield an empty string.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
}

// jobInfo renders "<Class> (Job ID: <id>)". Failure paths that fire before an
// identifier is assigned call it with withID false and get the class alone.
func jobInfo(job Snapshot, withID bool) string {
	if !withID || job.ID == "" {
		return job.Class
	}
	return fmt.Sprintf("%s (Job ID: %s)", job.Class, job.ID)
}

// exceptionInfo renders "<Class> (<message>)", appending the newline-joined
// backtrace when requested and present.
func exceptionInfo(exc *ExceptionInfo, withBacktrace bool) string {
	if exc == nil {
		return ""
	}
	s := fmt.Sprintf("%s (%s)", exc.Class, exc.Message)
	if withBacktrace && len(exc.Backtrace) > 0 {
		s += "\n" + strings.Join(exc.Backtrace, "\n")
	}
	return s
}

// argsInfo renders the argument list, or nothing when the job's class opts
// out of argument logging or there are no arguments.
func argsInfo(job Snapshot) string {
	if job.SkipArgumentLogging || len(job.Args) == 0 {
		return ""
	}
	parts := make([]string, len(job.Args))
	for i, arg := range job.Args {
		parts[i] = renderArg(formatArg(arg))
	}
	return "with arguments: " + strings.Join(parts, ", ")
}

// formatArg transforms an argument value for display: global-identifiable
// references become their identifier, mappings and sequences are transformed
// per value, everything else passes through. The transform is idempotent, so
// re-formatting an already formatted structure is a no-op.
func formatArg(v any) any {
	switch x := v.(type) {
	case GlobalIdentifiable:
		id, err := x.GlobalID()
		if err != nil {
			return v
		}
		return id
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = formatArg(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = formatArg(val)
		}
		return out
	default:
		return v
	}
}

// renderArg renders a transformed argument value. Strings are quoted, maps
// are rendered with sorted keys for determinism, sequences in order.
func renderArg(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(x)
	case []any:
		parts := make([]string, len(x))
		for i, val := range x {
			parts[i] = renderArg(val)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s: %s", k, renderArg(x[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", x)
	}
}
