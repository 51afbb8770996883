// Package execution implements the Execution Tracker (§4.5): it accepts
// patches carrying actual start/end times and status transitions for a
// single task, enforcing the field-level invariants and the status DAG.
package execution

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/tasktimeline/core/internal/userlock"
	"github.com/tasktimeline/core/pkg/errs"
	"github.com/tasktimeline/core/pkg/log"
	"github.com/tasktimeline/core/pkg/storage"
	"github.com/tasktimeline/core/pkg/types"
)

// Tracker applies execution patches to tasks (§2 component 7).
type Tracker struct {
	store  storage.Store
	locks  *userlock.Registry
	logger zerolog.Logger
}

// New constructs a Tracker. locks is shared with the Schedule Service so
// execution updates and schedule mutations for the same user serialize
// against each other (§5).
func New(store storage.Store, locks *userlock.Registry) *Tracker {
	return &Tracker{store: store, locks: locks, logger: log.WithComponent("execution")}
}

// Patch is the update the tracker accepts, a struct of optional fields
// (§9 Design Notes); invariant checks run per field actually present.
type Patch struct {
	ActualStartTime *time.Time
	ActualEndTime   *time.Time
	Status          *types.TaskStatus
}

// allowedTransitions is the status DAG (§4.5): pending -> in_progress ->
// completed; pending -> cancelled; in_progress -> cancelled. break is only
// reachable via the Schedule Service creating a break task directly, never
// through a tracked transition.
var allowedTransitions = map[types.TaskStatus]map[types.TaskStatus]bool{
	types.StatusPending: {
		types.StatusInProgress: true,
		types.StatusCancelled:  true,
	},
	types.StatusInProgress: {
		types.StatusCompleted: true,
		types.StatusCancelled: true,
	},
}

// Apply applies patch to the task identified by taskID, enforcing:
//   - if both actuals are present (after the patch), end >= start
//   - status transitions follow the allowed DAG; anything else is
//     IllegalTransition
//   - completed may be set without actuals (metrics treat them as
//     "not measured")
func (t *Tracker) Apply(taskID string, patch Patch) (*types.Task, error) {
	const op = "execution.Apply"

	task, err := t.store.GetTask(taskID)
	if err != nil {
		return nil, errs.Wrap(errs.NotFound, op, "task not found", err).WithField("task_id")
	}

	unlock := t.locks.Lock(task.UserID)
	defer unlock()

	// Re-fetch under lock in case it changed between the initial read and
	// acquiring the per-user lock.
	task, err = t.store.GetTask(taskID)
	if err != nil {
		return nil, errs.Wrap(errs.NotFound, op, "task not found", err).WithField("task_id")
	}

	if task.IsBreak() {
		return nil, errs.New(errs.ValidationError, op, "break tasks are not tracked for execution").WithUser(task.UserID)
	}

	start := task.ActualStartTime
	end := task.ActualEndTime
	if patch.ActualStartTime != nil {
		start = patch.ActualStartTime
	}
	if patch.ActualEndTime != nil {
		end = patch.ActualEndTime
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, errs.New(errs.ValidationError, op, "actual_end_time must be >= actual_start_time").
			WithField("actual_end_time").WithUser(task.UserID)
	}

	if patch.Status != nil {
		next := *patch.Status
		if next != task.Status {
			allowed := allowedTransitions[task.Status]
			if !allowed[next] {
				return nil, errs.New(errs.IllegalTransition, op,
					"transition "+string(task.Status)+" -> "+string(next)+" is not allowed").
					WithField("status").WithUser(task.UserID)
			}
		}
		task.Status = next
	}

	task.ActualStartTime = start
	task.ActualEndTime = end

	if err := t.store.UpdateTask(task); err != nil {
		return nil, errs.Wrap(errs.StorageUnavailable, op, "failed to persist execution update", err).WithUser(task.UserID)
	}

	t.logger.Debug().Str("user_id", task.UserID).Str("task_id", task.ID).
		Str("status", string(task.Status)).Msg("execution patch applied")

	return task, nil
}
