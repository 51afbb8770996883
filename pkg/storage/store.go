// Package storage defines the Task Store interface the core consumes
// (§2 component 1). Persistence itself is an external collaborator: the
// core never assumes the store is transactional across documents (§5).
// This package also ships two reference adapters — an in-memory Store
// used by tests and the CLI's ephemeral mode, and a BoltDB-backed Store
// for local single-node persistence — but neither is required; any
// implementation of Store plugs into the core unchanged.
package storage

import (
	"time"

	"github.com/tasktimeline/core/pkg/types"
)

// TaskFilter narrows ListTasks to a field-level query. Zero-value fields
// are not filtered on. All set fields are ANDed together.
type TaskFilter struct {
	UserID string

	Statuses []types.TaskStatus // match any

	// ScheduledIntersects restricts to tasks whose scheduled interval
	// intersects [Start, End).
	ScheduledIntersects bool
	Start               time.Time
	End                 time.Time

	// DeadlineOnDate restricts to tasks whose Deadline falls within
	// [Start, End) (reusing the same bounds as ScheduledIntersects when
	// both are requested for the same day).
	DeadlineOnDate bool

	// CreatedOnDate restricts to tasks whose CreatedAt falls within
	// [Start, End).
	CreatedOnDate bool

	// ExcludeBreaks drops tasks with Status == StatusBreak from results.
	ExcludeBreaks bool
}

// Store is the Task Store's CRUD surface plus filterable queries (§2
// component 1). It also persists Report records (§3), written once by the
// Report Generator and never mutated.
type Store interface {
	CreateTask(task *types.Task) error
	GetTask(id string) (*types.Task, error)
	ListTasks(filter TaskFilter) ([]*types.Task, error)
	UpdateTask(task *types.Task) error
	DeleteTask(id string) error

	CreateReport(report *types.Report) error
	GetReport(id string) (*types.Report, error)
	GetReportByUserDate(userID string, date time.Time) (*types.Report, error)
	ListReportsByUser(userID string) ([]*types.Report, error)

	Close() error
}
