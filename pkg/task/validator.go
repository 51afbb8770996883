// Package task centralizes the §3 task invariants (I1-I6) so every entry
// point — CLI apply, a future HTTP handler, or a test fixture — validates
// a task the same way before it reaches the Task Store, grounded on the
// gate-before-store pattern of a dependency-graph validator.
package task

import (
	"time"

	"github.com/tasktimeline/core/pkg/dependency"
	"github.com/tasktimeline/core/pkg/errs"
	"github.com/tasktimeline/core/pkg/storage"
	"github.com/tasktimeline/core/pkg/types"
)

// Validator gates task writes on the Task Store.
type Validator struct {
	store storage.Store
}

// New constructs a Validator over store.
func New(store storage.Store) *Validator {
	return &Validator{store: store}
}

// Create validates t and, if it passes, persists it via CreateTask.
func (v *Validator) Create(t *types.Task) error {
	const op = "task.Create"
	if err := v.validateFields(t); err != nil {
		return err
	}
	if err := v.validateNoCycle(t); err != nil {
		return err
	}
	if err := v.validateNoOverlap(t); err != nil {
		return err
	}
	if err := v.store.CreateTask(t); err != nil {
		return errs.Wrap(errs.StorageUnavailable, op, "failed to persist task", err).WithUser(t.UserID)
	}
	return nil
}

// Update validates t and, if it passes, persists it via UpdateTask.
func (v *Validator) Update(t *types.Task) error {
	const op = "task.Update"
	if err := v.validateFields(t); err != nil {
		return err
	}
	if err := v.validateNoCycle(t); err != nil {
		return err
	}
	if err := v.validateNoOverlap(t); err != nil {
		return err
	}
	if err := v.store.UpdateTask(t); err != nil {
		return errs.Wrap(errs.StorageUnavailable, op, "failed to persist task", err).WithUser(t.UserID)
	}
	return nil
}

// validateFields checks I1, I2, I3, I5 — the checks that need only the
// task itself.
func (v *Validator) validateFields(t *types.Task) error {
	const op = "task.validateFields"

	if t.IsBreak() {
		if t.UserID == "" {
			return errs.New(errs.ValidationError, op, "break task must have a user").WithField("user_id")
		}
		if !t.Scheduled() {
			return errs.New(errs.ValidationError, op, "break task must carry a scheduled interval").
				WithField("scheduled_start_time").WithUser(t.UserID)
		}
		if len(t.Dependencies) != 0 {
			return errs.New(errs.ValidationError, op, "break task must not participate in dependencies").
				WithField("dependencies").WithUser(t.UserID)
		}
		return nil
	}

	if t.DurationMinutes < 1 {
		return errs.New(errs.InvalidDuration, op, "duration must be at least 1 minute").
			WithField("duration_minutes").WithUser(t.UserID)
	}
	if t.Priority < 1 || t.Priority > 5 {
		return errs.New(errs.ValidationError, op, "priority must be between 1 and 5").
			WithField("priority").WithUser(t.UserID)
	}
	if t.Scheduled() {
		actual := t.ScheduledEndTime.Sub(*t.ScheduledStartTime)
		want := t.Duration()
		if diff := actual - want; diff > time.Minute || diff < -time.Minute {
			return errs.New(errs.ValidationError, op, "scheduled interval length must equal duration within 1 minute").
				WithField("scheduled_end_time").WithUser(t.UserID)
		}
	}
	for _, depID := range t.Dependencies {
		if depID == t.ID {
			return errs.New(errs.ValidationError, op, "task cannot depend on itself").
				WithField("dependencies").WithUser(t.UserID)
		}
	}
	return nil
}

// validateNoCycle enforces I4 at write time: the full dependency graph of
// t.UserID, with t substituted in (or added), must remain acyclic.
func (v *Validator) validateNoCycle(t *types.Task) error {
	const op = "task.validateNoCycle"
	if t.IsBreak() || len(t.Dependencies) == 0 {
		return nil
	}

	existing, err := v.store.ListTasks(storage.TaskFilter{UserID: t.UserID})
	if err != nil {
		return errs.Wrap(errs.StorageUnavailable, op, "failed to list user tasks for cycle check", err).WithUser(t.UserID)
	}

	merged := make([]*types.Task, 0, len(existing)+1)
	replaced := false
	for _, e := range existing {
		if e.ID == t.ID {
			merged = append(merged, t)
			replaced = true
			continue
		}
		merged = append(merged, e)
	}
	if !replaced {
		merged = append(merged, t)
	}

	for _, depID := range t.Dependencies {
		found := false
		for _, e := range merged {
			if e.ID == depID {
				found = true
				break
			}
		}
		if !found {
			return errs.New(errs.ValidationError, op, "dependency references an unknown task").
				WithField("dependencies").WithUser(t.UserID)
		}
	}

	if dependency.HasCycle(merged) {
		return errs.New(errs.CycleDetected, op, "task write would introduce a dependency cycle").WithUser(t.UserID)
	}
	return nil
}

// validateNoOverlap enforces I6: scheduled intervals belonging to the same
// user must be pairwise non-overlapping on any given day.
func (v *Validator) validateNoOverlap(t *types.Task) error {
	const op = "task.validateNoOverlap"
	if !t.Scheduled() {
		return nil
	}

	others, err := v.store.ListTasks(storage.TaskFilter{
		UserID:              t.UserID,
		ScheduledIntersects: true,
		Start:               *t.ScheduledStartTime,
		End:                 *t.ScheduledEndTime,
	})
	if err != nil {
		return errs.Wrap(errs.StorageUnavailable, op, "failed to list overlapping tasks", err).WithUser(t.UserID)
	}

	for _, o := range others {
		if o.ID == t.ID || !o.Scheduled() {
			continue
		}
		if o.ScheduledStartTime.Before(*t.ScheduledEndTime) && t.ScheduledStartTime.Before(*o.ScheduledEndTime) {
			return errs.New(errs.ValidationError, op, "scheduled interval overlaps an existing task").
				WithField("scheduled_start_time").WithUser(t.UserID)
		}
	}
	return nil
}
