// Package policy implements the Ordering Policies (§4.2): a policy is a
// total ordering over pending tasks, applied before the dependency
// resolver's topological flattening. Policies are values — a tagged
// types.Policy plus a comparator function — not a class hierarchy, per the
// data-driven design called for in §9.
package policy

import (
	"sort"
	"time"

	"github.com/tasktimeline/core/pkg/types"
)

// Comparator reports whether a should sort before b under a given policy.
type Comparator func(now time.Time, a, b *types.Task) bool

// comparators maps each required policy to its exact contract from the
// §4.2 table: primary key, secondary, tertiary.
var comparators = map[types.Policy]Comparator{
	types.PolicyRoundRobin: roundRobinLess,
	types.PolicyFCFS:       fcfsLess,
	types.PolicySJF:        sjfLess,
	types.PolicyLJF:        ljfLess,
	types.PolicyPriority:   priorityLess,
}

// Valid reports whether p names one of the five required policies.
func Valid(p types.Policy) bool {
	_, ok := comparators[p]
	return ok
}

// Sort orders tasks in place according to p, evaluated at instant now
// (deadline pressure and composite score are time-dependent). Ties are
// broken by task id for determinism so repeated calls with identical
// inputs always yield identical orders (P2).
func Sort(p types.Policy, now time.Time, tasks []*types.Task) {
	less, ok := comparators[p]
	if !ok {
		less = roundRobinLess
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if less(now, a, b) {
			return true
		}
		if less(now, b, a) {
			return false
		}
		return a.ID < b.ID
	})
}

func fcfsLess(now time.Time, a, b *types.Task) bool {
	return a.CreatedAt.Before(b.CreatedAt)
}

func sjfLess(now time.Time, a, b *types.Task) bool {
	if a.DurationMinutes != b.DurationMinutes {
		return a.DurationMinutes < b.DurationMinutes
	}
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func ljfLess(now time.Time, a, b *types.Task) bool {
	if a.DurationMinutes != b.DurationMinutes {
		return a.DurationMinutes > b.DurationMinutes
	}
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func priorityLess(now time.Time, a, b *types.Task) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	ad, bd := deadlineOrMax(a), deadlineOrMax(b)
	if !ad.Equal(bd) {
		return ad.Before(bd)
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func roundRobinLess(now time.Time, a, b *types.Task) bool {
	sa, sb := CompositeScore(now, a), CompositeScore(now, b)
	if sa != sb {
		return sa > sb
	}
	ad, bd := deadlineOrMax(a), deadlineOrMax(b)
	if !ad.Equal(bd) {
		return ad.Before(bd)
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// CompositeScore computes S = priority*10 + deadline_pressure for the
// round_robin policy (§4.2).
func CompositeScore(now time.Time, t *types.Task) float64 {
	return float64(t.Priority)*10 + DeadlinePressure(now, t)
}

// DeadlinePressure returns max(0, 10 - hours_until_deadline/2.4) if t has a
// deadline in the future, else 0 (§4.2). Bounded at 10 per the glossary.
func DeadlinePressure(now time.Time, t *types.Task) float64 {
	if t.Deadline == nil || !t.Deadline.After(now) {
		return 0
	}
	hoursUntil := t.Deadline.Sub(now).Hours()
	pressure := 10 - hoursUntil/2.4
	if pressure < 0 {
		return 0
	}
	if pressure > 10 {
		return 10
	}
	return pressure
}

func deadlineOrMax(t *types.Task) time.Time {
	if t.Deadline == nil {
		return time.Unix(1<<62, 0)
	}
	return *t.Deadline
}
