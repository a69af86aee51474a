package errors

import (
	"errors"
	"fmt"
)

// Input errors
var (
	ErrEmployeeNotFound = fmt.Errorf("employee not found")
	ErrShiftNotFound    = fmt.Errorf("shift not found")
	ErrMissingEmployees = fmt.Errorf("source and target employees are required")
	ErrMissingShift     = fmt.Errorf("shift id is required")
	ErrShiftNotOwned    = fmt.Errorf("shift does not belong to source employee")
	ErrShiftLocked      = fmt.Errorf("shift is locked")
	ErrInvalidHours     = fmt.Errorf("hours change must be positive")
)

// Conflict and engine errors
var (
	ErrNoCandidates      = fmt.Errorf("no suitable shifts found to redistribute")
	ErrNoCompatibleShift = fmt.Errorf("no compatible shift found for swap")
	ErrValidationFailed  = fmt.Errorf("validation failed")
	ErrNotImplemented    = fmt.Errorf("hours adjustment is not implemented yet")
	ErrUnknownSuggestion = fmt.Errorf("unknown suggestion type")
	ErrUnexpected        = fmt.Errorf("unexpected error")
)

// Workflow errors
var (
	ErrInvalidTransition      = fmt.Errorf("invalid transition")
	ErrUnauthorizedTransition = fmt.Errorf("role not allowed to perform transition")
	ErrUnknownStatus          = fmt.Errorf("unknown validation status")
	ErrAlreadyInStatus        = fmt.Errorf("shift already in target status")
)

// ReferenceError names the record that could not be resolved.
type ReferenceError struct {
	Kind string
	ID   string
	Err  error
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.ID, e.Err)
}

func (e *ReferenceError) Unwrap() error {
	return e.Err
}

// TransitionError describes a rejected workflow transition for one shift.
type TransitionError struct {
	ShiftID string
	From    string
	To      string
	Role    string
	Err     error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move shift %s from %s to %s as %s: %v", e.ShiftID, e.From, e.To, e.Role, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// PanicError wraps a recovered panic so it can travel as a regular error.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%v: %v", ErrUnexpected, e.Value)
}

func (e *PanicError) Unwrap() error {
	return ErrUnexpected
}

// IsInputError reports whether err stems from an unresolvable or malformed reference
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrShiftNotFound) ||
		errors.Is(err, ErrMissingEmployees) ||
		errors.Is(err, ErrMissingShift) ||
		errors.Is(err, ErrShiftNotOwned) ||
		errors.Is(err, ErrInvalidHours)
}

// IsWorkflowRejection reports whether err is an expected workflow refusal
func IsWorkflowRejection(err error) bool {
	return errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrUnauthorizedTransition) ||
		errors.Is(err, ErrAlreadyInStatus) ||
		errors.Is(err, ErrUnknownStatus)
}
