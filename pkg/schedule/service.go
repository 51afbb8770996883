// Package schedule implements the Schedule Service (§4.4): it orchestrates
// the Dependency Resolver, Ordering Policies, and Timeline Packer to
// generate conflict-free daily timelines, and owns break insertion with
// forward-shift reflow.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/tasktimeline/core/internal/userlock"
	"github.com/tasktimeline/core/pkg/clock"
	"github.com/tasktimeline/core/pkg/dependency"
	"github.com/tasktimeline/core/pkg/errs"
	"github.com/tasktimeline/core/pkg/id"
	"github.com/tasktimeline/core/pkg/log"
	"github.com/tasktimeline/core/pkg/metrics"
	"github.com/tasktimeline/core/pkg/packer"
	"github.com/tasktimeline/core/pkg/policy"
	"github.com/tasktimeline/core/pkg/storage"
	"github.com/tasktimeline/core/pkg/types"
)

// defaultMinBreakMinutes is the floor InsertBreak enforces when the
// caller does not supply a configured minimum (config.Config.MinBreakMinutes,
// §4.12), matching config.Default's own floor.
const defaultMinBreakMinutes = 5

// Service orchestrates generate/reset/daily/insert_break using the Task
// Store, Dependency Resolver, Ordering Policies, and Timeline Packer
// (§2 component 6). Mutating operations are serialized per user (§5).
type Service struct {
	store           storage.Store
	clock           clock.Clock
	locks           *userlock.Registry
	logger          zerolog.Logger
	minBreakMinutes int
}

// New constructs a Service with its own per-user lock registry. minBreakMinutes
// is the configured floor (config.Config.MinBreakMinutes); pass 0 to fall
// back to defaultMinBreakMinutes.
func New(store storage.Store, c clock.Clock, minBreakMinutes int) *Service {
	return NewWithLocks(store, c, userlock.NewRegistry(), minBreakMinutes)
}

// NewWithLocks constructs a Service sharing locks with another component
// (e.g. the Execution Tracker) so their mutating operations serialize
// against each other per user (§5).
func NewWithLocks(store storage.Store, c clock.Clock, locks *userlock.Registry, minBreakMinutes int) *Service {
	if minBreakMinutes < 1 {
		minBreakMinutes = defaultMinBreakMinutes
	}
	return &Service{
		store:           store,
		clock:           c,
		locks:           locks,
		logger:          log.WithComponent("schedule"),
		minBreakMinutes: minBreakMinutes,
	}
}

// Locks returns the Service's per-user lock registry, for sharing with
// the Execution Tracker.
func (s *Service) Locks() *userlock.Registry { return s.locks }

// GenerateParams bundles a generate request (§6 POST /scheduler/generate).
type GenerateParams struct {
	UserID      string
	Date        string // "YYYY-MM-DD" in the scheduling zone
	WindowStart time.Time
	WindowEnd   time.Time
	Policy      types.Policy
}

// SkipReason explains why an admissible-but-unplaced or inadmissible task
// did not end up on the timeline.
type SkipReason string

const (
	SkipWindowFull       SkipReason = "window_full"
	SkipDependencyUnmet  SkipReason = "dependency_unmet"
)

// Skipped pairs a task with the reason it was not placed.
type Skipped struct {
	Task   *types.Task
	Reason SkipReason
}

// GenerateResult is the outcome of a Generate call.
type GenerateResult struct {
	Placed  []*types.Task // in scheduled order
	Skipped []Skipped
}

// Generate implements §4.4 generate: clear existing schedule for the date,
// select and admit candidates, order, resolve dependencies, pack, persist,
// and return the placed tasks in scheduled order.
func (s *Service) Generate(params GenerateParams) (*GenerateResult, error) {
	const op = "schedule.Generate"
	timer := metrics.NewTimer()
	defer timer.ObserveDurationVec(metrics.GenerateDuration)

	if !policy.Valid(params.Policy) {
		if params.Policy == "" {
			params.Policy = types.PolicyRoundRobin
		} else {
			return nil, errs.New(errs.ValidationError, op, "unknown policy").WithField("policy").WithUser(params.UserID)
		}
	}

	unlock := s.locks.Lock(params.UserID)
	defer unlock()

	dayStart, dayEnd, err := clock.DayBounds(s.clock, params.Date)
	if err != nil {
		return nil, errs.Wrap(errs.ValidationError, op, "invalid date", err).WithField("date")
	}

	// Step 1: clear existing scheduled_* for the user's tasks that fall
	// on date (generation is idempotent within the window).
	existing, err := s.store.ListTasks(storage.TaskFilter{
		UserID:              params.UserID,
		ScheduledIntersects: true,
		Start:               dayStart,
		End:                 dayEnd,
	})
	if err != nil {
		return nil, errs.Wrap(errs.StorageUnavailable, op, "failed to list existing schedule", err).WithUser(params.UserID)
	}
	for _, t := range existing {
		t.ScheduledStartTime = nil
		t.ScheduledEndTime = nil
		if err := s.store.UpdateTask(t); err != nil {
			return nil, errs.Wrap(errs.StorageUnavailable, op, "failed to clear existing schedule", err).WithUser(params.UserID)
		}
	}

	// Step 2: select candidates.
	pending, err := s.store.ListTasks(storage.TaskFilter{
		UserID:   params.UserID,
		Statuses: []types.TaskStatus{types.StatusPending, types.StatusInProgress},
	})
	if err != nil {
		return nil, errs.Wrap(errs.StorageUnavailable, op, "failed to list candidate tasks", err).WithUser(params.UserID)
	}

	var candidates []*types.Task
	for _, t := range pending {
		if t.Deadline == nil {
			candidates = append(candidates, t)
			continue
		}
		if !t.Deadline.Before(dayStart) && t.Deadline.Before(dayEnd) {
			candidates = append(candidates, t)
		}
	}

	// Step 3: admit only tasks whose dependencies are completed, or are
	// themselves admissible candidates (and so will be placed earlier in
	// this generation via the topological order).
	admissible, skippedDeps, err := s.admit(candidates)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{}
	for _, t := range skippedDeps {
		result.Skipped = append(result.Skipped, Skipped{Task: t, Reason: SkipDependencyUnmet})
		metrics.TasksSkipped.WithLabelValues(string(SkipDependencyUnmet)).Inc()
	}

	// Step 4: order, resolve, pack — iterating to a fixed point: if a
	// dependency within the admissible set itself fails to be placed by
	// the packer, its dependents cannot honor P3 and must be dropped too.
	now := s.clock.Now()
	for {
		policy.Sort(params.Policy, now, admissible)

		ordered, err := dependency.Resolve(admissible)
		if err != nil {
			return nil, errs.Wrap(errs.CycleDetected, op, "dependency cycle in candidate set", err).WithUser(params.UserID)
		}

		durations := make([]time.Duration, len(ordered))
		for i, t := range ordered {
			durations[i] = t.Duration()
		}
		placements := packer.Pack(params.WindowStart, params.WindowEnd, durations)

		placedIDs := make(map[string]bool, len(ordered))
		for i, p := range placements {
			if p != nil {
				placedIDs[ordered[i].ID] = true
			}
		}

		var demoted []*types.Task
		var survivors []*types.Task
		for _, t := range ordered {
			blocked := false
			for _, depID := range t.Dependencies {
				if dependsOnTask(candidates, depID) && !placedIDs[depID] {
					blocked = true
					break
				}
			}
			if blocked {
				demoted = append(demoted, t)
			} else {
				survivors = append(survivors, t)
			}
		}

		if len(demoted) == 0 {
			// stable: persist this pack.
			for i, t := range ordered {
				p := placements[i]
				if p == nil {
					result.Skipped = append(result.Skipped, Skipped{Task: t, Reason: SkipWindowFull})
					metrics.TasksSkipped.WithLabelValues(string(SkipWindowFull)).Inc()
					continue
				}
				t.ScheduledStartTime = &p.Start
				t.ScheduledEndTime = &p.End
				if err := s.store.UpdateTask(t); err != nil {
					return nil, errs.Wrap(errs.StorageUnavailable, op, "failed to persist scheduled interval", err).WithUser(params.UserID)
				}
				result.Placed = append(result.Placed, t)
				metrics.TasksScheduled.WithLabelValues(string(params.Policy)).Inc()
			}
			break
		}

		for _, t := range demoted {
			result.Skipped = append(result.Skipped, Skipped{Task: t, Reason: SkipDependencyUnmet})
			metrics.TasksSkipped.WithLabelValues(string(SkipDependencyUnmet)).Inc()
		}
		admissible = survivors
	}

	sort.Slice(result.Placed, func(i, j int) bool {
		return result.Placed[i].ScheduledStartTime.Before(*result.Placed[j].ScheduledStartTime)
	})

	s.logger.Debug().Str("user_id", params.UserID).Str("date", params.Date).
		Int("placed", len(result.Placed)).Int("skipped", len(result.Skipped)).Msg("generate complete")

	return result, nil
}

// admit splits candidates into admissible tasks and those whose
// dependency (outside the candidate set) is not completed.
func (s *Service) admit(candidates []*types.Task) (admissible, rejected []*types.Task, err error) {
	inSet := make(map[string]bool, len(candidates))
	for _, t := range candidates {
		inSet[t.ID] = true
	}

	for _, t := range candidates {
		ok := true
		for _, depID := range t.Dependencies {
			if inSet[depID] {
				continue // resolved via topological order within this generation
			}
			dep, getErr := s.store.GetTask(depID)
			if getErr != nil || dep.Status != types.StatusCompleted {
				ok = false
				break
			}
		}
		if ok {
			admissible = append(admissible, t)
		} else {
			rejected = append(rejected, t)
		}
	}
	return admissible, rejected, nil
}

func dependsOnTask(set []*types.Task, id string) bool {
	for _, t := range set {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Reset implements §4.4 reset: clears scheduled_* for all of the user's
// tasks with a scheduled interval intersecting date, and returns the
// count cleared.
func (s *Service) Reset(userID, date string) (int, error) {
	const op = "schedule.Reset"
	unlock := s.locks.Lock(userID)
	defer unlock()

	dayStart, dayEnd, err := clock.DayBounds(s.clock, date)
	if err != nil {
		return 0, errs.Wrap(errs.ValidationError, op, "invalid date", err).WithField("date")
	}

	tasks, err := s.store.ListTasks(storage.TaskFilter{
		UserID:              userID,
		ScheduledIntersects: true,
		Start:               dayStart,
		End:                 dayEnd,
	})
	if err != nil {
		return 0, errs.Wrap(errs.StorageUnavailable, op, "failed to list scheduled tasks", err).WithUser(userID)
	}

	cleared := 0
	for _, t := range tasks {
		t.ScheduledStartTime = nil
		t.ScheduledEndTime = nil
		if err := s.store.UpdateTask(t); err != nil {
			return cleared, errs.Wrap(errs.StorageUnavailable, op, "failed to clear scheduled interval", err).WithUser(userID)
		}
		cleared++
	}
	return cleared, nil
}

// Daily implements §4.4 daily: all of the user's tasks whose scheduled
// interval intersects date, ordered by scheduled_start_time. Reads need
// not take the per-user lock (§5).
func (s *Service) Daily(userID, date string) ([]*types.Task, error) {
	const op = "schedule.Daily"
	dayStart, dayEnd, err := clock.DayBounds(s.clock, date)
	if err != nil {
		return nil, errs.Wrap(errs.ValidationError, op, "invalid date", err).WithField("date")
	}

	tasks, err := s.store.ListTasks(storage.TaskFilter{
		UserID:              userID,
		ScheduledIntersects: true,
		Start:               dayStart,
		End:                 dayEnd,
	})
	if err != nil {
		return nil, errs.Wrap(errs.StorageUnavailable, op, "failed to list scheduled tasks", err).WithUser(userID)
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].ScheduledStartTime.Before(*tasks[j].ScheduledStartTime)
	})
	return tasks, nil
}

// InsertBreakParams bundles an insert_break request (§4.4).
type InsertBreakParams struct {
	UserID          string
	AfterTaskID     string
	DurationMinutes int
	// WindowEnd, if set, lets InsertBreak flag a reflow that pushes a
	// task past the working window (§4.4 step 4). Optional because the
	// operation's signature in §4.4 carries no window parameter; callers
	// that know the day's window (e.g. from the last Generate call)
	// should pass it to get the warning.
	WindowEnd *time.Time
}

// InsertBreakResult is the outcome of InsertBreak.
type InsertBreakResult struct {
	Break           *types.Task
	Shifted         []*types.Task // later same-day tasks, in ascending original start order
	ShiftMinutes    int
	WindowExceeded  bool
	AppliedOutcomes []errs.Outcome // set only when a partial failure occurred
}

// InsertBreak implements §4.4 insert_break: locate the anchor, compute the
// gap to the next scheduled task, and either place the break in the gap or
// shift every later same-day task forward by (duration - gap) minutes.
func (s *Service) InsertBreak(params InsertBreakParams) (*InsertBreakResult, error) {
	const op = "schedule.InsertBreak"

	if params.DurationMinutes < s.minBreakMinutes {
		return nil, errs.New(errs.InvalidDuration, op, fmt.Sprintf("break duration must be >= %d minutes", s.minBreakMinutes)).WithUser(params.UserID)
	}

	unlock := s.locks.Lock(params.UserID)
	defer unlock()

	anchor, err := s.store.GetTask(params.AfterTaskID)
	if err != nil || anchor.UserID != params.UserID || !anchor.Scheduled() {
		return nil, errs.New(errs.NotFound, op, "anchor task not found or not scheduled").WithField("after_task_id").WithUser(params.UserID)
	}

	anchorEnd := *anchor.ScheduledEndTime
	breakDuration := time.Duration(params.DurationMinutes) * time.Minute
	breakEnd := anchorEnd.Add(breakDuration)

	dayStart := anchorEnd.Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	same, err := s.store.ListTasks(storage.TaskFilter{
		UserID:              params.UserID,
		ScheduledIntersects: true,
		Start:               dayStart,
		End:                 dayEnd,
	})
	if err != nil {
		return nil, errs.Wrap(errs.StorageUnavailable, op, "failed to list same-day tasks", err).WithUser(params.UserID)
	}

	var later []*types.Task
	for _, t := range same {
		if t.ID == anchor.ID {
			continue
		}
		if t.ScheduledStartTime.After(anchorEnd) || t.ScheduledStartTime.Equal(anchorEnd) {
			later = append(later, t)
		}
	}
	sort.Slice(later, func(i, j int) bool {
		return later[i].ScheduledStartTime.Before(*later[j].ScheduledStartTime)
	})

	gap := time.Duration(0)
	if len(later) > 0 {
		gap = later[0].ScheduledStartTime.Sub(anchorEnd)
	}

	brk := &types.Task{
		ID:                 id.New(s.clock.Now()).String(),
		UserID:             params.UserID,
		Name:               "break",
		Status:             types.StatusBreak,
		DurationMinutes:    params.DurationMinutes,
		ScheduledStartTime: &anchorEnd,
		ScheduledEndTime:   &breakEnd,
	}

	result := &InsertBreakResult{Break: brk}

	toApply := []*types.Task{brk}

	if breakDuration > gap {
		shiftBy := breakDuration - gap
		result.ShiftMinutes = int(shiftBy.Minutes())
		for _, t := range later {
			newStart := t.ScheduledStartTime.Add(shiftBy)
			newEnd := t.ScheduledEndTime.Add(shiftBy)
			if params.WindowEnd != nil && newEnd.After(*params.WindowEnd) {
				result.WindowExceeded = true
			}
			t.ScheduledStartTime = &newStart
			t.ScheduledEndTime = &newEnd
			result.Shifted = append(result.Shifted, t)
			toApply = append(toApply, t)
		}
	}

	if err := s.store.CreateTask(brk); err != nil {
		return nil, errs.Wrap(errs.StorageUnavailable, op, "failed to persist break", err).WithUser(params.UserID)
	}
	outcomes := []errs.Outcome{{ID: brk.ID, Applied: true}}

	for _, t := range result.Shifted {
		if err := s.store.UpdateTask(t); err != nil {
			outcomes = append(outcomes, errs.Outcome{ID: t.ID, Applied: false, Err: err})
			e := errs.New(errs.PartialApply, op, "break inserted but some shifts failed to persist").WithUser(params.UserID)
			e.Outcomes = outcomes
			result.AppliedOutcomes = outcomes
			return result, e
		}
		outcomes = append(outcomes, errs.Outcome{ID: t.ID, Applied: true})
	}

	if len(result.Shifted) > 0 {
		metrics.BreakReflowTotal.Inc()
	}
	if result.WindowExceeded {
		metrics.BreakReflowWarnings.Inc()
	}

	s.logger.Debug().Str("user_id", params.UserID).Str("after_task_id", params.AfterTaskID).
		Int("shifted", len(result.Shifted)).Bool("window_exceeded", result.WindowExceeded).Msg("break inserted")

	return result, nil
}
