// Package scenario holds a single cross-package test reproducing the
// literal end-to-end scenarios from §7 (S1-S6): Schedule Service generation
// under two ordering policies, a window too small to hold every candidate,
// break insertion with reflow, report metrics, and dependency-cycle
// rejection. Each case wires the Schedule Service and Report Generator
// together exactly as taskctl does, rather than through a single
// package's unit fixtures.
package scenario

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasktimeline/core/pkg/clock"
	"github.com/tasktimeline/core/pkg/errs"
	"github.com/tasktimeline/core/pkg/report"
	"github.com/tasktimeline/core/pkg/schedule"
	"github.com/tasktimeline/core/pkg/storage"
	"github.com/tasktimeline/core/pkg/summary"
	"github.com/tasktimeline/core/pkg/types"
)

const scenarioDate = "2026-07-31"

func newScenarioServices(t *testing.T, now time.Time) (*schedule.Service, *report.Generator, storage.Store) {
	t.Helper()
	store := storage.NewMemStore()
	c := clock.NewFixed(now, time.UTC)
	sched := schedule.New(store, c, 5)
	gen := report.New(store, c, summary.NewTemplate(), time.Second)
	return sched, gen, store
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 7, 31, hour, minute, 0, 0, time.UTC)
}

// S1: round_robin orders C ahead of B once A's dependency is satisfied,
// because the comparator ranked C before B pre-topologically at level 0.
func TestScenario_S1_RoundRobinPlacement(t *testing.T) {
	sched, _, store := newScenarioServices(t, at(8, 0))
	require.NoError(t, store.CreateTask(&types.Task{ID: "A", UserID: "u", Status: types.StatusPending, DurationMinutes: 60, Priority: 5}))
	require.NoError(t, store.CreateTask(&types.Task{ID: "B", UserID: "u", Status: types.StatusPending, DurationMinutes: 30, Priority: 3, Dependencies: []string{"A"}}))
	require.NoError(t, store.CreateTask(&types.Task{ID: "C", UserID: "u", Status: types.StatusPending, DurationMinutes: 45, Priority: 4}))

	result, err := sched.Generate(schedule.GenerateParams{
		UserID: "u", Date: scenarioDate,
		WindowStart: at(9, 0), WindowEnd: at(12, 0),
		Policy: types.PolicyRoundRobin,
	})
	require.NoError(t, err)
	require.Len(t, result.Placed, 3)

	byID := make(map[string]*types.Task, 3)
	for _, p := range result.Placed {
		byID[p.ID] = p
	}
	assert.Equal(t, at(9, 0), *byID["A"].ScheduledStartTime)
	assert.Equal(t, at(10, 0), *byID["A"].ScheduledEndTime)
	assert.Equal(t, at(10, 0), *byID["C"].ScheduledStartTime)
	assert.Equal(t, at(10, 45), *byID["C"].ScheduledEndTime)
	assert.Equal(t, at(10, 45), *byID["B"].ScheduledStartTime)
	assert.Equal(t, at(11, 15), *byID["B"].ScheduledEndTime)
}

// S2: sjf places C after B once A unblocks B, since B (30m) is shorter
// than C (45m).
func TestScenario_S2_SJFPlacement(t *testing.T) {
	sched, _, store := newScenarioServices(t, at(8, 0))
	require.NoError(t, store.CreateTask(&types.Task{ID: "A", UserID: "u", Status: types.StatusPending, DurationMinutes: 60, Priority: 5}))
	require.NoError(t, store.CreateTask(&types.Task{ID: "B", UserID: "u", Status: types.StatusPending, DurationMinutes: 30, Priority: 3, Dependencies: []string{"A"}}))
	require.NoError(t, store.CreateTask(&types.Task{ID: "C", UserID: "u", Status: types.StatusPending, DurationMinutes: 45, Priority: 4}))

	result, err := sched.Generate(schedule.GenerateParams{
		UserID: "u", Date: scenarioDate,
		WindowStart: at(9, 0), WindowEnd: at(12, 0),
		Policy: types.PolicySJF,
	})
	require.NoError(t, err)
	require.Len(t, result.Placed, 3)

	byID := make(map[string]*types.Task, 3)
	for _, p := range result.Placed {
		byID[p.ID] = p
	}
	assert.Equal(t, at(9, 0), *byID["A"].ScheduledStartTime)
	assert.Equal(t, at(10, 0), *byID["A"].ScheduledEndTime)
	assert.Equal(t, at(10, 0), *byID["B"].ScheduledStartTime)
	assert.Equal(t, at(10, 30), *byID["B"].ScheduledEndTime)
	assert.Equal(t, at(10, 30), *byID["C"].ScheduledStartTime)
	assert.Equal(t, at(11, 15), *byID["C"].ScheduledEndTime)
}

// S3: a window that fits only one of two equal-duration tasks places
// exactly one of them.
func TestScenario_S3_WindowFitsExactlyOne(t *testing.T) {
	sched, _, store := newScenarioServices(t, at(8, 0))
	require.NoError(t, store.CreateTask(&types.Task{ID: "A", UserID: "u", Status: types.StatusPending, DurationMinutes: 30, Priority: 1}))
	require.NoError(t, store.CreateTask(&types.Task{ID: "B", UserID: "u", Status: types.StatusPending, DurationMinutes: 30, Priority: 1}))

	result, err := sched.Generate(schedule.GenerateParams{
		UserID: "u", Date: scenarioDate,
		WindowStart: at(9, 0), WindowEnd: at(9, 30),
		Policy: types.PolicyRoundRobin,
	})
	require.NoError(t, err)
	assert.Len(t, result.Placed, 1)
	assert.Len(t, result.Skipped, 1)
	assert.Equal(t, schedule.SkipWindowFull, result.Skipped[0].Reason)
}

// S4: inserting a 20-minute break after a task ending at 10:00, with the
// next task originally starting at 10:10 (a 10-minute gap), shifts that
// task and every later same-day task by 10 minutes.
func TestScenario_S4_InsertBreakShiftsLaterTasks(t *testing.T) {
	sched, _, store := newScenarioServices(t, at(8, 0))

	anchorStart, anchorEnd := at(9, 30), at(10, 0)
	require.NoError(t, store.CreateTask(&types.Task{
		ID: "anchor", UserID: "u", Status: types.StatusPending, DurationMinutes: 30,
		ScheduledStartTime: &anchorStart, ScheduledEndTime: &anchorEnd,
	}))
	nextStart, nextEnd := at(10, 10), at(10, 40)
	require.NoError(t, store.CreateTask(&types.Task{
		ID: "next", UserID: "u", Status: types.StatusPending, DurationMinutes: 30,
		ScheduledStartTime: &nextStart, ScheduledEndTime: &nextEnd,
	}))

	result, err := sched.InsertBreak(schedule.InsertBreakParams{
		UserID: "u", AfterTaskID: "anchor", DurationMinutes: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, at(10, 0), *result.Break.ScheduledStartTime)
	assert.Equal(t, at(10, 20), *result.Break.ScheduledEndTime)
	assert.Equal(t, 10, result.ShiftMinutes)
	require.Len(t, result.Shifted, 1)
	assert.Equal(t, "next", result.Shifted[0].ID)
	assert.Equal(t, at(10, 20), *result.Shifted[0].ScheduledStartTime)
	assert.Equal(t, at(10, 50), *result.Shifted[0].ScheduledEndTime)
}

// S5: completed tasks that both started late yield a 0% on-time rate, a
// 22.5-minute average delay, and the productivity score formula's exact
// clamp-free result of 60.
func TestScenario_S5_ReportMetrics(t *testing.T) {
	_, gen, store := newScenarioServices(t, at(18, 0))

	aSched, aSchedEnd := at(9, 0), at(10, 0)
	aActual, aActualEnd := at(9, 15), at(10, 20)
	require.NoError(t, store.CreateTask(&types.Task{
		ID: "A", UserID: "u", Name: "A", Status: types.StatusCompleted, DurationMinutes: 60,
		ScheduledStartTime: &aSched, ScheduledEndTime: &aSchedEnd,
		ActualStartTime: &aActual, ActualEndTime: &aActualEnd,
	}))
	bSched, bSchedEnd := at(10, 0), at(10, 30)
	bActual, bActualEnd := at(10, 30), at(10, 55)
	require.NoError(t, store.CreateTask(&types.Task{
		ID: "B", UserID: "u", Name: "B", Status: types.StatusCompleted, DurationMinutes: 30,
		ScheduledStartTime: &bSched, ScheduledEndTime: &bSchedEnd,
		ActualStartTime: &bActual, ActualEndTime: &bActualEnd,
	}))

	rpt, err := gen.Generate("u", scenarioDate, nil)
	require.NoError(t, err)

	assert.Equal(t, 100.0, rpt.Metrics.CompletionRate)
	assert.Equal(t, 0.0, rpt.Metrics.OnTimeRate)
	assert.InDelta(t, 22.5, rpt.Metrics.AvgDelay, 0.01)
	assert.Equal(t, 90, rpt.Metrics.TotalScheduledTime)
	assert.Equal(t, 90, rpt.Metrics.TotalActualTime)
	assert.InDelta(t, 1.0, rpt.Metrics.TimeEfficiency, 0.001)
	assert.InDelta(t, 60.0, rpt.Metrics.ProductivityScore, 0.01)
}

// S6: a two-task dependency cycle fails generation with CycleDetected and
// performs no writes.
func TestScenario_S6_DependencyCycleRejected(t *testing.T) {
	sched, _, store := newScenarioServices(t, at(8, 0))
	require.NoError(t, store.CreateTask(&types.Task{ID: "A", UserID: "u", Status: types.StatusPending, DurationMinutes: 30, Dependencies: []string{"B"}}))
	require.NoError(t, store.CreateTask(&types.Task{ID: "B", UserID: "u", Status: types.StatusPending, DurationMinutes: 30, Dependencies: []string{"A"}}))

	_, err := sched.Generate(schedule.GenerateParams{
		UserID: "u", Date: scenarioDate,
		WindowStart: at(9, 0), WindowEnd: at(12, 0),
		Policy: types.PolicyRoundRobin,
	})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.CycleDetected))

	a, err := store.GetTask("A")
	require.NoError(t, err)
	assert.Nil(t, a.ScheduledStartTime)
	b, err := store.GetTask("B")
	require.NoError(t, err)
	assert.Nil(t, b.ScheduledStartTime)
}
