package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel for transitions outside the table.
// Callers should re-fetch the order before retrying: the status they saw is
// stale or the move was never legal.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a requested status change that the
// transition table does not allow.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an error for a (from, to) pair outside
// the transition table.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
