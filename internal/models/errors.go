package models

import "errors"

// Recoverable outcomes of core operations. Callers distinguish them with
// errors.Is; the HTTP layer maps each one to its own response class and never
// collapses them into a generic failure. Anything else bubbling out of the
// core is an unexpected storage-level fault.
var (
	// ErrValidation marks malformed input, e.g. a missing required field or
	// a satisfaction rating outside 1..5.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an unknown complaint or user id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition marks a requested status change whose edge does
	// not exist in the lifecycle graph.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrForbidden marks an authorization denial. Denial is a first-class
	// outcome, not a defect.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState marks an operation that is not legal in the
	// complaint's current lifecycle phase, e.g. deleting a complaint that
	// already has history, or feedback on an unresolved complaint.
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrConflict marks the loser of a concurrent write, or a duplicate
	// feedback submission. The client may retry against fresh state.
	ErrConflict = errors.New("conflict")
)
