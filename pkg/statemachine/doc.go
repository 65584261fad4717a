// Package statemachine provides a small, type-safe finite-state machine.
//
// States and events are any comparable types chosen by the caller, usually
// string or int based enums:
//
//	type Status int
//	type Event string
//
//	m := statemachine.MustNew[Status, Event](Idle,
//	    statemachine.WithTransition[Status, Event](Idle, Pending, "changed"),
//	    statemachine.WithTransitionFromAny[Status, Event](Idle, "cleared"),
//	)
//
//	next, err := m.Fire(ctx, "changed", nil)
//
// # Guards and Actions
//
// Several transitions may be declared for the same state and event. Fire tries
// them in declaration order and applies the first one whose guards all pass,
// which allows branching on the data passed to Fire. Transitions declared with
// WithTransitionFromAny are tried after the ones declared for the current
// state.
//
// Actions run after guards succeed and before the state changes. An action
// error aborts the transition and is returned wrapped.
//
// # Error Handling
//
// Fire returns a *TransitionError that matches ErrNoTransition when the
// event is not declared for the current state and ErrRejected when guards
// refused every candidate:
//
//	if errors.Is(err, statemachine.ErrRejected) { /* guards said no */ }
//
// # Concurrency
//
// Machine guards its state with a RWMutex. Guards and actions run while the
// write lock is held and must not call back into the same machine.
package statemachine
