// Package types holds the shared API types and the error taxonomy
// used by the engagement lifecycle.
package types

import "fmt"

// NotFoundError indicates that a referenced record does not exist.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Resource, e.ID)
}

// ForbiddenError indicates the actor is not the required party for the
// requested transition.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

// InvalidTransitionError indicates the current status does not permit
// the requested transition or action.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s. Current status: %s", e.Reason, e.From)
	}
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// ValidationError indicates a required field is missing or out of range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConflictError indicates the request collides with an existing record.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// CapacityExceededError indicates a job has reached its applicant cap.
type CapacityExceededError struct {
	JobID         uint
	MaxApplicants int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("job %d has reached its maximum of %d applicants", e.JobID, e.MaxApplicants)
}

// DuplicateError indicates the worker already has an active
// application for the job.
type DuplicateError struct {
	JobID    uint
	WorkerID uint
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("worker %d already has an active application for job %d", e.WorkerID, e.JobID)
}
