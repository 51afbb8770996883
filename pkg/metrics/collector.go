package metrics

import "github.com/tasktimeline/core/pkg/types"

// Collector snapshots task counts by status into TasksByStatus. Unlike the
// teacher's ticker-driven Collector, the core has no long-running process
// to tick from (§6: no transport is implemented), so Collect is called
// once per CLI invocation that has a task set in hand rather than on a
// schedule.
type Collector struct{}

// NewCollector returns a Collector. It holds no state; it exists to mirror
// the teacher's constructor shape for callers that want one.
func NewCollector() *Collector {
	return &Collector{}
}

// Collect resets TasksByStatus to the counts in tasks. Callers that only
// see one user's tasks per invocation (the CLI's usual case) still produce
// a meaningful, if partial, snapshot; it is illustrative only.
func (c *Collector) Collect(tasks []*types.Task) {
	counts := make(map[types.TaskStatus]int)
	for _, t := range tasks {
		counts[t.Status]++
	}
	for _, status := range []types.TaskStatus{
		types.StatusPending,
		types.StatusInProgress,
		types.StatusCompleted,
		types.StatusCancelled,
		types.StatusBreak,
	} {
		TasksByStatus.WithLabelValues(string(status)).Set(float64(counts[status]))
	}
}
