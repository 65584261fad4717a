package statemachine

import (
	"fmt"
)

// Option configures a state machine during construction.
type Option[S, E comparable] func(*Machine[S, E]) error

// TransitionOption configures a single transition with guards and actions.
type TransitionOption[S, E comparable] func(*Transition[S, E])

// New creates a new state machine with the given initial state and options.
func New[S, E comparable](initialState S, opts ...Option[S, E]) (*Machine[S, E], error) {
	m := newMachine[S, E](initialState)

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// MustNew creates a new state machine with the given initial state and options.
// Panics if any option fails to apply.
func MustNew[S, E comparable](initialState S, opts ...Option[S, E]) *Machine[S, E] {
	m, err := New(initialState, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}

// WithTransition adds a single transition to the state machine.
func WithTransition[S, E comparable](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		t := Transition[S, E]{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		m.addTransition(t)
		return nil
	}
}

// WithTransitionFromAny adds a transition that applies in every state.
// Transitions declared for the current state are tried first.
func WithTransitionFromAny[S, E comparable](to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		t := Transition[S, E]{To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		m.addAnyStateTransition(t)
		return nil
	}
}

// WithTransitions adds multiple transitions to the state machine at once.
func WithTransitions[S, E comparable](transitions []Transition[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		for i, t := range transitions {
			if len(t.Guards) == 0 && i > 0 && duplicateOf(transitions[:i], t) {
				return fmt.Errorf("failed to add transition[%d] %v->%v on %v: %w",
					i, t.From, t.To, t.Event, ErrDuplicateTransition)
			}
			m.addTransition(t)
		}
		return nil
	}
}

func duplicateOf[S, E comparable](prev []Transition[S, E], t Transition[S, E]) bool {
	for _, p := range prev {
		if p.From == t.From && p.Event == t.Event && len(p.Guards) == 0 {
			return true
		}
	}
	return false
}

// WithGuard adds a single guard to a transition.
func WithGuard[S, E comparable](guard Guard[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if guard != nil {
			t.Guards = append(t.Guards, guard)
		}
	}
}

// WithAction adds a single action to a transition.
func WithAction[S, E comparable](action Action[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if action != nil {
			t.Actions = append(t.Actions, action)
		}
	}
}
