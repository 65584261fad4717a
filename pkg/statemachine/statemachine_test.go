package statemachine_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/statemachine"
)

type docState string

type docEvent string

const (
	Draft     docState = "draft"
	InReview  docState = "in_review"
	Approved  docState = "approved"
	Rejected  docState = "rejected"
	Withdrawn docState = "withdrawn"

	Submit   docEvent = "submit"
	Approve  docEvent = "approve"
	Reject   docEvent = "reject"
	Withdraw docEvent = "withdraw"
)

type (
	docMachine = statemachine.Machine[docState, docEvent]
	docGuard   = statemachine.Guard[docState, docEvent]
	docAction  = statemachine.Action[docState, docEvent]
)

func transition(from, to docState, event docEvent, opts ...statemachine.TransitionOption[docState, docEvent]) statemachine.Option[docState, docEvent] {
	return statemachine.WithTransition(from, to, event, opts...)
}

func TestMachine_BasicTransitions(t *testing.T) {
	t.Parallel()

	m := statemachine.MustNew(Draft,
		transition(Draft, InReview, Submit),
		transition(InReview, Approved, Approve),
	)
	ctx := context.Background()

	assert.Equal(t, Draft, m.Current())
	assert.True(t, m.CanFire(ctx, Submit, nil))
	assert.False(t, m.CanFire(ctx, Approve, nil))

	next, err := m.Fire(ctx, Submit, nil)
	require.NoError(t, err)
	assert.Equal(t, InReview, next)
	assert.True(t, m.Is(InReview))

	next, err = m.Fire(ctx, Approve, nil)
	require.NoError(t, err)
	assert.Equal(t, Approved, next)

	m.Reset()
	assert.Equal(t, Draft, m.Current())
}

func TestMachine_NoTransition(t *testing.T) {
	t.Parallel()

	m := statemachine.MustNew(Draft, transition(Draft, InReview, Submit))

	state, err := m.Fire(context.Background(), Approve, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, statemachine.ErrNoTransition)
	assert.NotErrorIs(t, err, statemachine.ErrRejected)
	assert.Equal(t, Draft, state)
	assert.Contains(t, err.Error(), "'draft'")
	assert.Contains(t, err.Error(), "'approve'")
}

func TestMachine_GuardBranching(t *testing.T) {
	t.Parallel()

	approved := func(_ context.Context, _ docState, _ docEvent, data any) bool {
		ok, _ := data.(bool)
		return ok
	}
	var always docGuard = func(context.Context, docState, docEvent, any) bool { return true }

	newMachine := func() *docMachine {
		return statemachine.MustNew(InReview,
			transition(InReview, Approved, Approve, statemachine.WithGuard[docState, docEvent](approved)),
			transition(InReview, Rejected, Approve, statemachine.WithGuard(always)),
		)
	}
	ctx := context.Background()

	m := newMachine()
	next, err := m.Fire(ctx, Approve, true)
	require.NoError(t, err)
	assert.Equal(t, Approved, next)

	m = newMachine()
	next, err = m.Fire(ctx, Approve, false)
	require.NoError(t, err)
	assert.Equal(t, Rejected, next)
}

func TestMachine_GuardRejects(t *testing.T) {
	t.Parallel()

	var never docGuard = func(context.Context, docState, docEvent, any) bool { return false }
	m := statemachine.MustNew(Draft, transition(Draft, InReview, Submit, statemachine.WithGuard(never)))
	ctx := context.Background()

	assert.False(t, m.CanFire(ctx, Submit, nil))
	_, err := m.Fire(ctx, Submit, nil)
	assert.ErrorIs(t, err, statemachine.ErrRejected)
	assert.Equal(t, Draft, m.Current())
}

func TestMachine_Actions(t *testing.T) {
	t.Parallel()

	t.Run("run in order before state change", func(t *testing.T) {
		t.Parallel()

		var calls []string
		record := func(name string) docAction {
			return func(_ context.Context, from, to docState, event docEvent, _ any) error {
				calls = append(calls, name+":"+string(from)+"->"+string(to)+"@"+string(event))
				return nil
			}
		}

		m := statemachine.MustNew(Draft, transition(Draft, InReview, Submit,
			statemachine.WithAction(record("first")),
			statemachine.WithAction(record("second")),
		))

		_, err := m.Fire(context.Background(), Submit, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"first:draft->in_review@submit",
			"second:draft->in_review@submit",
		}, calls)
	})

	t.Run("error aborts transition", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		var fail docAction = func(context.Context, docState, docState, docEvent, any) error { return boom }
		m := statemachine.MustNew(Draft, transition(Draft, InReview, Submit, statemachine.WithAction(fail)))

		state, err := m.Fire(context.Background(), Submit, nil)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, Draft, state)
		assert.Equal(t, Draft, m.Current())
	})
}

func TestMachine_TransitionFromAny(t *testing.T) {
	t.Parallel()

	m := statemachine.MustNew(Draft,
		transition(Draft, InReview, Submit),
		transition(InReview, Approved, Approve),
		transition(Approved, Approved, Withdraw),
		statemachine.WithTransitionFromAny[docState, docEvent](Withdrawn, Withdraw),
	)
	ctx := context.Background()

	next, err := m.Fire(ctx, Withdraw, nil)
	require.NoError(t, err)
	assert.Equal(t, Withdrawn, next)

	m.Reset()
	_, _ = m.Fire(ctx, Submit, nil)
	_, _ = m.Fire(ctx, Approve, nil)

	// state specific transition takes priority
	next, err = m.Fire(ctx, Withdraw, nil)
	require.NoError(t, err)
	assert.Equal(t, Approved, next)
}

func TestWithTransitions(t *testing.T) {
	t.Parallel()

	m, err := statemachine.New(Draft, statemachine.WithTransitions([]statemachine.Transition[docState, docEvent]{
		{From: Draft, To: InReview, Event: Submit},
		{From: InReview, To: Approved, Event: Approve},
	}))
	require.NoError(t, err)

	_, err = m.Fire(context.Background(), Submit, nil)
	require.NoError(t, err)

	_, err = statemachine.New(Draft, statemachine.WithTransitions([]statemachine.Transition[docState, docEvent]{
		{From: Draft, To: InReview, Event: Submit},
		{From: Draft, To: Rejected, Event: Submit},
	}))
	assert.ErrorIs(t, err, statemachine.ErrDuplicateTransition)

	assert.Panics(t, func() {
		statemachine.MustNew(Draft, statemachine.WithTransitions([]statemachine.Transition[docState, docEvent]{
			{From: Draft, To: InReview, Event: Submit},
			{From: Draft, To: Rejected, Event: Submit},
		}))
	})
}

func TestMachine_Concurrency(t *testing.T) {
	t.Parallel()

	m := statemachine.MustNew(Draft,
		transition(Draft, InReview, Submit),
		transition(InReview, Draft, Withdraw),
	)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = m.Fire(ctx, Submit, nil)
			} else {
				_, _ = m.Fire(ctx, Withdraw, nil)
			}
			_ = m.CanFire(ctx, Submit, nil)
			_ = m.Current()
		}(i)
	}
	wg.Wait()

	assert.Contains(t, []docState{Draft, InReview}, m.Current())
}

func BenchmarkMachine_Fire(b *testing.B) {
	m := statemachine.MustNew(Draft,
		transition(Draft, InReview, Submit),
		transition(InReview, Draft, Withdraw),
	)
	ctx := context.Background()
	events := [2]docEvent{Submit, Withdraw}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Fire(ctx, events[i%2], nil)
	}
}
