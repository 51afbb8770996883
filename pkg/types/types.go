// Package types holds the data model shared by every core component: Task,
// Report, TaskSummary, and ProductivityMetrics (§3), plus the status and
// policy enumerations they're built from.
package types

import "time"

// TaskStatus is one of the five states a task (or break) can be in.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
	StatusBreak      TaskStatus = "break"
)

// Policy names one of the five required ordering policies (§4.2).
type Policy string

const (
	PolicyRoundRobin Policy = "round_robin"
	PolicyFCFS       Policy = "fcfs"
	PolicySJF        Policy = "sjf"
	PolicyLJF        Policy = "ljf"
	PolicyPriority   Policy = "priority"
)

// Task is the unit the scheduler places on a timeline (§3).
type Task struct {
	ID          string
	UserID      string
	Name        string
	Description string

	DurationMinutes int
	Priority        int // 1..5, 5 highest
	Status          TaskStatus

	Deadline *time.Time // optional, absolute instant (UTC)

	Dependencies []string // task ids, same user, must be acyclic (I4)

	ScheduledStartTime *time.Time
	ScheduledEndTime   *time.Time

	ActualStartTime *time.Time
	ActualEndTime   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBreak reports whether this task is a break interval (§4.7): a break is
// owned by a user, has status break, a scheduled interval, and no
// dependencies.
func (t *Task) IsBreak() bool { return t.Status == StatusBreak }

// Scheduled reports whether the task currently carries a placed interval.
func (t *Task) Scheduled() bool {
	return t.ScheduledStartTime != nil && t.ScheduledEndTime != nil
}

// Duration returns the task's configured duration as a time.Duration.
func (t *Task) Duration() time.Duration {
	return time.Duration(t.DurationMinutes) * time.Minute
}

// ScheduledInterval returns the task's placed interval, zero values if
// unscheduled.
func (t *Task) ScheduledInterval() (start, end time.Time) {
	if !t.Scheduled() {
		return time.Time{}, time.Time{}
	}
	return *t.ScheduledStartTime, *t.ScheduledEndTime
}

// Clone returns a deep-enough copy for safe mutation by callers that must
// not alias the store's copy (pointers to time.Time are re-allocated).
func (t *Task) Clone() *Task {
	c := *t
	c.Dependencies = append([]string(nil), t.Dependencies...)
	c.Deadline = clonePtr(t.Deadline)
	c.ScheduledStartTime = clonePtr(t.ScheduledStartTime)
	c.ScheduledEndTime = clonePtr(t.ScheduledEndTime)
	c.ActualStartTime = clonePtr(t.ActualStartTime)
	c.ActualEndTime = clonePtr(t.ActualEndTime)
	return &c
}

func clonePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// TaskSummary is a derived, immutable per-report row (§3, §4.8).
type TaskSummary struct {
	TaskID             string
	Name               string
	ScheduledDuration  int // minutes
	ActualDuration     *int
	ScheduledStartTime *time.Time
	ScheduledEndTime   *time.Time
	ActualStartTime    *time.Time
	ActualEndTime      *time.Time
	Status             TaskStatus
	Priority           int
	DelayMinutes       *int // signed; positive = late
}

// ProductivityMetrics is the derived per-day metrics record (§3, §4.8).
type ProductivityMetrics struct {
	CompletionRate     float64
	OnTimeRate         float64
	AvgDelay           float64
	ProductivityScore  float64
	TotalScheduledTime int // minutes
	TotalActualTime    int // minutes
	TimeEfficiency     float64
	IdleMinutes        *int // supplemental: window size - scheduled time, when window known
}

// Report is the generator's immutable output for a (user, date) pair.
type Report struct {
	ID        string
	UserID    string
	Date      time.Time // midnight-aligned, in the scheduling zone
	CreatedAt time.Time

	Tasks     []TaskSummary
	Metrics   ProductivityMetrics
	AISummary string
}
