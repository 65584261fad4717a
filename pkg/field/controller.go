package field

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/storefront/pkg/broadcast"
	"github.com/dmitrymomot/storefront/pkg/debounce"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/statemachine"
)

// ValidateFunc turns raw text into a typed value or a validation error.
type ValidateFunc[T any] func(raw string) (T, error)

// DescribeFunc renders a validation error for display.
type DescribeFunc func(err error) string

// outcome is the settled result for a given raw text.
type outcome[T any] struct {
	raw     string
	status  Status
	value   T
	err     error
	message string
}

// Controller validates one input field after the user stops typing.
//
// Every TextChanged cancels the pending validation. When the text equals
// the last validated text, the earlier outcome is restored without another
// validation pass. A validation scheduled before the latest input is never
// applied.
//
// Listeners run one at a time in transition order, outside the controller
// lock, so they may call back into the controller.
type Controller[T any] struct {
	name     string
	validate ValidateFunc[T]
	describe DescribeFunc
	deb      *debounce.Debouncer
	sm       *statemachine.Machine[Status, event]
	log      *slog.Logger

	mu        sync.Mutex
	raw       string
	current   outcome[T]
	committed outcome[T]
	closed    bool

	subs broadcast.Listeners[State[T]]
}

// New creates a controller around validate. describe renders errors for
// State.Message; nil uses err.Error().
func New[T any](validate ValidateFunc[T], describe DescribeFunc, opts ...Option) *Controller[T] {
	return newController(validate, describe, newConfig(opts))
}

func newController[T any](validate ValidateFunc[T], describe DescribeFunc, cfg *config) *Controller[T] {
	if describe == nil {
		describe = func(err error) string { return err.Error() }
	}

	log := cfg.log.With(logger.Component("field"))
	if cfg.name != "" {
		log = log.With(logger.Field(cfg.name))
	}

	c := &Controller[T]{
		name:     cfg.name,
		validate: validate,
		describe: describe,
		deb:      debounce.New(cfg.delay, debounce.WithClock(cfg.clock)),
		log:      log,
	}
	c.sm = newStatusMachine(log)
	return c
}

func newStatusMachine(log *slog.Logger) *statemachine.Machine[Status, event] {
	trace := statemachine.WithAction(func(ctx context.Context, from, to Status, ev event, _ any) error {
		log.DebugContext(ctx, "field transition",
			slog.String("from", from.String()),
			logger.Status(to.String()),
			logger.Event(string(ev)),
		)
		return nil
	})
	restores := func(s Status) statemachine.TransitionOption[Status, event] {
		return statemachine.WithGuard(func(_ context.Context, _ Status, _ event, data any) bool {
			committed, ok := data.(Status)
			return ok && committed == s
		})
	}

	return statemachine.MustNew(Idle,
		statemachine.WithTransitionFromAny(Pending, evChanged, trace),
		statemachine.WithTransitionFromAny(Idle, evDeduped, restores(Idle), trace),
		statemachine.WithTransitionFromAny(Valid, evDeduped, restores(Valid), trace),
		statemachine.WithTransitionFromAny(Invalid, evDeduped, restores(Invalid), trace),
		statemachine.WithTransition(Pending, Idle, evSettledEmpty, trace),
		statemachine.WithTransition(Pending, Valid, evSettledValid, trace),
		statemachine.WithTransition(Pending, Invalid, evSettledInvalid, trace),
	)
}

// Name returns the label set with WithName.
func (c *Controller[T]) Name() string {
	return c.name
}

// TextChanged records raw as the current input. It is ignored after Close.
func (c *Controller[T]) TextChanged(raw string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.raw = raw
	if raw == c.committed.raw {
		c.deb.Cancel()
		c.fire(evDeduped, c.committed.status)
		c.current = c.committed
	} else {
		c.fire(evChanged, nil)
		c.current = outcome[T]{raw: raw, status: Pending}
		c.deb.Schedule(c.settle)
	}
	c.enqueueLocked()
	c.mu.Unlock()

	c.notify()
}

// settle runs when the debounce delay passes without new input.
func (c *Controller[T]) settle(tok debounce.Token) {
	c.mu.Lock()
	if c.closed || !c.deb.Valid(tok) || c.sm.Current() != Pending {
		c.mu.Unlock()
		return
	}
	c.settleLocked()
	c.mu.Unlock()

	c.notify()
}

// Flush validates the pending input now instead of waiting for the delay.
// It does nothing when no validation is pending.
func (c *Controller[T]) Flush() {
	c.mu.Lock()
	if c.closed || c.sm.Current() != Pending {
		c.mu.Unlock()
		return
	}
	c.deb.Cancel()
	c.settleLocked()
	c.mu.Unlock()

	c.notify()
}

func (c *Controller[T]) settleLocked() {
	raw := c.raw
	res := outcome[T]{raw: raw}

	if raw == "" {
		res.status = Idle
		c.fire(evSettledEmpty, nil)
	} else if v, err := c.validate(raw); err != nil {
		res.status = Invalid
		res.err = err
		res.message = c.describe(err)
		c.fire(evSettledInvalid, nil)
	} else {
		res.status = Valid
		res.value = v
		c.fire(evSettledValid, nil)
	}

	c.current = res
	c.committed = res
	c.enqueueLocked()
}

func (c *Controller[T]) fire(ev event, data any) {
	if _, err := c.sm.Fire(context.Background(), ev, data); err != nil {
		// The transition table covers every reachable case.
		c.log.Error("unexpected field transition", logger.Event(string(ev)), logger.Error(err))
	}
}

// Snapshot returns the current state.
func (c *Controller[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller[T]) snapshotLocked() State[T] {
	s := State[T]{
		Raw:    c.raw,
		Status: c.current.status,
	}
	switch s.Status {
	case Valid:
		s.Value = c.current.value
	case Invalid:
		s.Err = c.current.err
		s.Message = c.current.message
	}
	return s
}

// Status returns the current status.
func (c *Controller[T]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.status
}

// Value returns the validated value when the field is Valid.
func (c *Controller[T]) Value() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current.status != Valid {
		var zero T
		return zero, false
	}
	return c.current.value, true
}

func (c *Controller[T]) IsValid() bool {
	return c.Status() == Valid
}

// OnChange registers fn for every state change and returns a function that
// removes it.
func (c *Controller[T]) OnChange(fn func(State[T])) (remove func()) {
	return c.subs.Add(fn)
}

// Close cancels the pending validation. Later input is ignored; the last
// state stays readable.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.deb.Stop()
	c.subs.Close()
}

// enqueueLocked queues the current state while c.mu fixes its order.
func (c *Controller[T]) enqueueLocked() {
	c.subs.Enqueue(c.snapshotLocked())
}

func (c *Controller[T]) notify() {
	c.subs.Drain()
}
