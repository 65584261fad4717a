package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// Action executes side effects during state transitions. Returning an error prevents the transition.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E, data any) error

// Guard evaluates whether a transition should be allowed based on runtime conditions.
type Guard[S, E comparable] func(ctx context.Context, from S, event E, data any) bool

// Transition defines a state change triggered by an event, with optional guards and actions.
type Transition[S, E comparable] struct {
	From    S
	To      S
	Event   E
	Guards  []Guard[S, E]  // All must pass for transition to proceed
	Actions []Action[S, E] // Executed in order before state change
}

// Machine is a thread-safe in-memory state machine over caller-defined state and event types.
// Uses a nested map structure for O(1) transition lookups: [fromState][event][]Transition
type Machine[S, E comparable] struct {
	initialState S
	currentState S
	transitions  map[S]map[E][]Transition[S, E]
	anyState     map[E][]Transition[S, E]
	mu           sync.RWMutex
}

func newMachine[S, E comparable](initialState S) *Machine[S, E] {
	return &Machine[S, E]{
		initialState: initialState,
		currentState: initialState,
		transitions:  make(map[S]map[E][]Transition[S, E]),
		anyState:     make(map[E][]Transition[S, E]),
	}
}

func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentState
}

// Is reports whether the machine is currently in state s.
func (m *Machine[S, E]) Is(s S) bool {
	return m.Current() == s
}

func (m *Machine[S, E]) addTransition(t Transition[S, E]) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transitions[t.From]; !ok {
		m.transitions[t.From] = make(map[E][]Transition[S, E])
	}
	// Multiple transitions allowed for same from/event to support guard-based branching
	m.transitions[t.From][t.Event] = append(m.transitions[t.From][t.Event], t)
}

func (m *Machine[S, E]) addAnyStateTransition(t Transition[S, E]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.anyState[t.Event] = append(m.anyState[t.Event], t)
}

// candidates returns transitions declared for the current state first, then wildcard ones.
func (m *Machine[S, E]) candidates(event E) []Transition[S, E] {
	specific := m.transitions[m.currentState][event]
	wildcard := m.anyState[event]
	if len(wildcard) == 0 {
		return specific
	}
	out := make([]Transition[S, E], 0, len(specific)+len(wildcard))
	out = append(out, specific...)
	return append(out, wildcard...)
}

func (m *Machine[S, E]) match(ctx context.Context, event E, data any) (*Transition[S, E], error) {
	transitions := m.candidates(event)
	if len(transitions) == 0 {
		return nil, transitionError(m.currentState, event, false)
	}

	// First transition with passing guards wins (enables priority ordering)
	for i, t := range transitions {
		allGuardsPassed := true
		for _, guard := range t.Guards {
			if guard != nil && !guard(ctx, m.currentState, event, data) {
				allGuardsPassed = false
				break
			}
		}
		if allGuardsPassed {
			return &transitions[i], nil
		}
	}

	return nil, transitionError(m.currentState, event, true)
}

// Fire applies the first matching transition for event and returns the resulting state.
func (m *Machine[S, E]) Fire(ctx context.Context, event E, data any) (S, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.match(ctx, event, data)
	if err != nil {
		return m.currentState, err
	}

	// Execute actions before state change; any failure aborts transition
	for _, action := range t.Actions {
		if action != nil {
			if err := action(ctx, m.currentState, t.To, event, data); err != nil {
				return m.currentState, fmt.Errorf("action failed: %w", err)
			}
		}
	}

	m.currentState = t.To
	return m.currentState, nil
}

func (m *Machine[S, E]) CanFire(ctx context.Context, event E, data any) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := m.match(ctx, event, data)
	return err == nil
}

func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentState = m.initialState
}
