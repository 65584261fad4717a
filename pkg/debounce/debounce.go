package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used when New receives a non-positive delay.
const DefaultDelay = 300 * time.Millisecond

// Token identifies one scheduled call. Every Schedule and Cancel invalidates
// the tokens handed out before it.
type Token uint64

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithClock replaces the wall clock, typically with a ManualClock in tests.
func WithClock(c Clock) Option {
	return func(d *Debouncer) {
		if c != nil {
			d.clock = c
		}
	}
}

// Debouncer delays a call until no new call has been scheduled for the
// configured delay. Scheduling again cancels the previous timer.
type Debouncer struct {
	mu      sync.Mutex
	clock   Clock
	delay   time.Duration
	timer   Timer
	gen     Token
	pending bool
	stopped bool
}

// New creates a Debouncer waiting delay before each call.
func New(delay time.Duration, opts ...Option) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d := &Debouncer{
		clock: SystemClock(),
		delay: delay,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Debouncer) Delay() time.Duration { return d.delay }

// Schedule cancels any pending call and arranges for fn to run after the delay.
// fn receives the token returned here; callers that share state with fn should
// confirm Valid(token) under their own lock before applying results, since a
// timer can fire while a newer Schedule is in progress.
// After Stop, Schedule does nothing and returns the zero token.
func (d *Debouncer) Schedule(fn func(Token)) Token {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return 0
	}

	d.stopLocked()
	d.gen++
	tok := d.gen
	d.pending = true
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.gen != tok || d.stopped {
			d.mu.Unlock()
			return
		}
		d.pending = false
		d.timer = nil
		d.mu.Unlock()

		fn(tok)
	})
	return tok
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
}

// Valid reports whether tok belongs to the most recent Schedule and the
// debouncer has not been cancelled or stopped since.
func (d *Debouncer) Valid(tok Token) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.stopped && tok != 0 && tok == d.gen
}

// Pending reports whether a call is waiting for its delay to pass.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop cancels the pending call and makes later Schedule calls no-ops.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
	d.stopped = true
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = false
}
