package statemachine

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateTransition is returned when an unguarded transition would shadow an earlier one.
	ErrDuplicateTransition = errors.New("unguarded transition already declared for state and event")

	// ErrNoTransition matches a TransitionError for an event the current state does not declare.
	ErrNoTransition = errors.New("no transition available")

	// ErrRejected matches a TransitionError whose candidates were all refused by guards.
	ErrRejected = errors.New("transition rejected by guards")
)

// TransitionError is returned by Fire when the event cannot move the machine.
type TransitionError struct {
	State    string
	Event    string
	Rejected bool
}

func (e *TransitionError) Error() string {
	if e.Rejected {
		return fmt.Sprintf("transition from state '%s' for event '%s' was rejected by guards", e.State, e.Event)
	}
	return fmt.Sprintf("no transition available from state '%s' for event '%s'", e.State, e.Event)
}

func (e *TransitionError) Unwrap() error {
	if e.Rejected {
		return ErrRejected
	}
	return ErrNoTransition
}

func transitionError(state, event any, rejected bool) *TransitionError {
	return &TransitionError{State: fmt.Sprint(state), Event: fmt.Sprint(event), Rejected: rejected}
}
