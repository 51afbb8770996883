package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tasktimeline/core/pkg/types"
)

var now = time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		p    types.Policy
		want bool
	}{
		{"round_robin", types.PolicyRoundRobin, true},
		{"fcfs", types.PolicyFCFS, true},
		{"sjf", types.PolicySJF, true},
		{"ljf", types.PolicyLJF, true},
		{"priority", types.PolicyPriority, true},
		{"unknown", types.Policy("bogus"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.p))
		})
	}
}

func TestSort_FCFS_OrdersByCreationTime(t *testing.T) {
	early := &types.Task{ID: "a", CreatedAt: now}
	late := &types.Task{ID: "b", CreatedAt: now.Add(time.Hour)}

	tasks := []*types.Task{late, early}
	Sort(types.PolicyFCFS, now, tasks)

	assert.Equal(t, []string{"a", "b"}, ids(tasks))
}

func TestSort_SJF_ShortestFirstThenPriorityThenCreatedAt(t *testing.T) {
	short := &types.Task{ID: "short", DurationMinutes: 15, CreatedAt: now}
	long := &types.Task{ID: "long", DurationMinutes: 60, CreatedAt: now}

	tasks := []*types.Task{long, short}
	Sort(types.PolicySJF, now, tasks)
	assert.Equal(t, []string{"short", "long"}, ids(tasks))

	lowPri := &types.Task{ID: "low", DurationMinutes: 30, Priority: 1, CreatedAt: now}
	highPri := &types.Task{ID: "high", DurationMinutes: 30, Priority: 5, CreatedAt: now}
	tied := []*types.Task{lowPri, highPri}
	Sort(types.PolicySJF, now, tied)
	assert.Equal(t, []string{"high", "low"}, ids(tied))
}

func TestSort_LJF_LongestFirst(t *testing.T) {
	short := &types.Task{ID: "short", DurationMinutes: 15, CreatedAt: now}
	long := &types.Task{ID: "long", DurationMinutes: 60, CreatedAt: now}

	tasks := []*types.Task{short, long}
	Sort(types.PolicyLJF, now, tasks)
	assert.Equal(t, []string{"long", "short"}, ids(tasks))
}

func TestSort_Priority_HighestFirstThenDeadlineThenCreatedAt(t *testing.T) {
	low := &types.Task{ID: "low", Priority: 1, CreatedAt: now}
	high := &types.Task{ID: "high", Priority: 5, CreatedAt: now}

	tasks := []*types.Task{low, high}
	Sort(types.PolicyPriority, now, tasks)
	assert.Equal(t, []string{"high", "low"}, ids(tasks))

	soonDeadline := now.Add(time.Hour)
	laterDeadline := now.Add(48 * time.Hour)
	soon := &types.Task{ID: "soon", Priority: 3, Deadline: &soonDeadline, CreatedAt: now}
	later := &types.Task{ID: "later", Priority: 3, Deadline: &laterDeadline, CreatedAt: now}
	tied := []*types.Task{later, soon}
	Sort(types.PolicyPriority, now, tied)
	assert.Equal(t, []string{"soon", "later"}, ids(tied))
}

func TestSort_RoundRobin_UsesCompositeScore(t *testing.T) {
	urgentDeadline := now.Add(time.Hour)
	urgent := &types.Task{ID: "urgent", Priority: 3, Deadline: &urgentDeadline, CreatedAt: now}
	relaxed := &types.Task{ID: "relaxed", Priority: 1, CreatedAt: now}

	tasks := []*types.Task{relaxed, urgent}
	Sort(types.PolicyRoundRobin, now, tasks)
	assert.Equal(t, []string{"urgent", "relaxed"}, ids(tasks))
}

func TestSort_TiesBreakByTaskID(t *testing.T) {
	a := &types.Task{ID: "b-task", CreatedAt: now}
	b := &types.Task{ID: "a-task", CreatedAt: now}

	tasks := []*types.Task{a, b}
	Sort(types.PolicyFCFS, now, tasks)
	assert.Equal(t, []string{"a-task", "b-task"}, ids(tasks))
}

func TestSort_UnknownPolicyFallsBackToRoundRobin(t *testing.T) {
	urgentDeadline := now.Add(time.Hour)
	urgent := &types.Task{ID: "urgent", Priority: 3, Deadline: &urgentDeadline, CreatedAt: now}
	relaxed := &types.Task{ID: "relaxed", Priority: 1, CreatedAt: now}

	tasks := []*types.Task{relaxed, urgent}
	Sort(types.Policy("bogus"), now, tasks)
	assert.Equal(t, []string{"urgent", "relaxed"}, ids(tasks))
}

func TestCompositeScore(t *testing.T) {
	task := &types.Task{Priority: 2}
	assert.Equal(t, 20.0, CompositeScore(now, task))
}

func TestDeadlinePressure(t *testing.T) {
	tests := []struct {
		name     string
		deadline *time.Time
		want     float64
	}{
		{name: "no deadline", deadline: nil, want: 0},
		{name: "deadline in the past", deadline: ptr(now.Add(-time.Hour)), want: 0},
		{name: "deadline far in the future is clamped to 0", deadline: ptr(now.Add(100 * time.Hour)), want: 0},
		{name: "deadline exactly 24 hours out yields zero pressure", deadline: ptr(now.Add(24 * time.Hour)), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeadlinePressure(now, &types.Task{Deadline: tt.deadline})
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 10.0)
		})
	}

	// Deadline close enough to produce pressure near the 10 ceiling.
	soon := ptr(now.Add(time.Minute))
	got := DeadlinePressure(now, &types.Task{Deadline: soon})
	assert.InDelta(t, 10.0, got, 0.1)
}

func ids(tasks []*types.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func ptr(t time.Time) *time.Time { return &t }
