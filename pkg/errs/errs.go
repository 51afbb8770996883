// Package errs defines the error taxonomy shared by every core component:
// Dependency Resolver, Ordering Policies, Timeline Packer, Schedule Service,
// Execution Tracker, and Report Generator. Component-local checks raise the
// precise Kind; the orchestrating service wraps only to add operation/user
// context, never swallowing the original kind.
package errs

import (
	"errors"
	"fmt"
)

// Kind is the taxonomy of error classes the core can raise. It is not a Go
// type hierarchy; callers discriminate with Is/As against these values.
type Kind string

const (
	// ValidationError is a field-level constraint violation: duration,
	// priority, status transition, or a dependency referencing itself.
	ValidationError Kind = "validation_error"

	// NotFound is a referenced task or report that does not exist.
	NotFound Kind = "not_found"

	// NoTasksForDate is raised by report generation when the candidate
	// task set for a date is empty.
	NoTasksForDate Kind = "no_tasks_for_date"

	// CycleDetected is a dependency cycle, either at task write time or
	// during schedule generation.
	CycleDetected Kind = "cycle_detected"

	// IllegalTransition is a status change outside the allowed DAG.
	IllegalTransition Kind = "illegal_transition"

	// InvalidDuration is a break or task duration below the configured
	// minimum.
	InvalidDuration Kind = "invalid_duration"

	// PartialApply is a multi-document write that partially failed.
	PartialApply Kind = "partial_apply"

	// StorageUnavailable wraps an underlying store failure. Retryable.
	StorageUnavailable Kind = "storage_unavailable"

	// Timeout is an operation that exceeded its caller-supplied deadline.
	Timeout Kind = "timeout"
)

// Error is the single error type every core component returns. It carries
// the precise Kind, the field or identifier at fault (when applicable), and
// the wrapped cause.
type Error struct {
	Kind    Kind
	Op      string // operation name, e.g. "schedule.Generate"
	UserID  string
	Field   string
	Message string
	Cause   error

	// Outcomes holds per-id results for Kind == PartialApply.
	Outcomes []Outcome
}

// Outcome records the result of applying a single document update, used by
// PartialApply to let the caller resume.
type Outcome struct {
	ID      string
	Applied bool
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field=%s)", msg, e.Field)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, &errs.Error{Kind: errs.NotFound}).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

// New constructs an Error of the given kind.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap constructs an Error of the given kind, chaining cause.
func Wrap(kind Kind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Cause: cause}
}

// WithUser attaches a user id for context and returns the receiver.
func (e *Error) WithUser(userID string) *Error {
	e.UserID = userID
	return e
}

// WithField attaches the offending field name and returns the receiver.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// Of reports the Kind of err if it is (or wraps) an *Error, and ok=false
// otherwise.
func Of(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Is reports whether err is of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := Of(err)
	return ok && k == kind
}
