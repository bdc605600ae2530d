package jobtrace

import (
	"fmt"
	"slices"
	"strings"
)

// enqueueAllMessage summarizes one batched enqueue call.
//
// The backend-reported EnqueuedCount drives the branching while the per-job
// breakdown comes from the SuccessfullyEnqueued flags; the two can disagree,
// and the failed count is derived from EnqueuedCount, not from the flags.
// When EnqueuedCount exceeds the flagged subset the "Failed enqueuing" clause
// is still suppressed, matching the backend's own accounting.
func (s *Subscriber) enqueueAllMessage(p EnqueueAllPayload) string {
	adapter := s.resolve(p.Adapter)
	total := len(p.Jobs)

	switch {
	case p.EnqueuedCount == total:
		return enqueuedJobsMessage(adapter, p.Jobs)
	case p.EnqueuedCount > 0:
		enqueued := make([]Snapshot, 0, p.EnqueuedCount)
		for _, job := range p.Jobs {
			if job.SuccessfullyEnqueued {
				enqueued = append(enqueued, job)
			}
		}
		failed := total - p.EnqueuedCount
		if failed == 0 {
			return enqueuedJobsMessage(adapter, enqueued)
		}
		return fmt.Sprintf("%s. Failed enqueuing %d %s",
			enqueuedJobsMessage(adapter, enqueued), failed, pluralJobs(failed))
	default:
		return fmt.Sprintf("Failed enqueuing %d %s to %s", total, pluralJobs(total), adapter)
	}
}

// enqueuedJobsMessage renders "Enqueued <N> job(s) to <adapter> (<count>
// <Class>, ...)" with classes sorted by descending count; ties keep
// first-seen order.
func enqueuedJobsMessage(adapter string, jobs []Snapshot) string {
	type classCount struct {
		class string
		count int
	}

	counts := make(map[string]*classCount, len(jobs))
	breakdown := make([]*classCount, 0, len(jobs))
	for _, job := range jobs {
		cc, ok := counts[job.Class]
		if !ok {
			cc = &classCount{class: job.Class}
			counts[job.Class] = cc
			breakdown = append(breakdown, cc)
		}
		cc.count++
	}

	slices.SortStableFunc(breakdown, func(a, b *classCount) int {
		return b.count - a.count
	})

	parts := make([]string, len(breakdown))
	for i, cc := range breakdown {
		parts[i] = fmt.Sprintf("%d %s", cc.count, cc.class)
	}

	msg := fmt.Sprintf("Enqueued %d %s to %s", len(jobs), pluralJobs(len(jobs)), adapter)
	if len(parts) > 0 {
		msg += " (" + strings.Join(parts, ", ") + ")"
	}
	return msg
}

func pluralJobs(n int) string {
	if n == 1 {
		return "job"
	}
	return "jobs"
}
