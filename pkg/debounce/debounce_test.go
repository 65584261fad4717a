package debounce_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/debounce"
)

const delay = 300 * time.Millisecond

func newManual() (*debounce.Debouncer, *debounce.ManualClock) {
	clock := debounce.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return debounce.New(delay, debounce.WithClock(clock)), clock
}

func TestDebouncer_SingleCall(t *testing.T) {
	t.Parallel()

	d, clock := newManual()
	var calls int
	tok := d.Schedule(func(got debounce.Token) {
		calls++
		assert.True(t, d.Valid(got))
	})

	assert.True(t, d.Pending())
	clock.Advance(delay - time.Millisecond)
	assert.Equal(t, 0, calls)

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)
	assert.False(t, d.Pending())
	assert.True(t, d.Valid(tok))
}

func TestDebouncer_RapidCallsRunOnlyLast(t *testing.T) {
	t.Parallel()

	d, clock := newManual()
	var got []int
	for i := 1; i <= 10; i++ {
		d.Schedule(func(debounce.Token) { got = append(got, i) })
		clock.Advance(10 * time.Millisecond)
	}

	clock.Advance(delay)
	assert.Equal(t, []int{10}, got)
	assert.Equal(t, 0, clock.Pending())
}

func TestDebouncer_Cancel(t *testing.T) {
	t.Parallel()

	d, clock := newManual()
	var calls int
	tok := d.Schedule(func(debounce.Token) { calls++ })

	d.Cancel()
	assert.False(t, d.Valid(tok))
	assert.False(t, d.Pending())

	clock.Advance(time.Second)
	assert.Equal(t, 0, calls)
}

func TestDebouncer_TokensInvalidatedByNewSchedule(t *testing.T) {
	t.Parallel()

	d, _ := newManual()
	first := d.Schedule(func(debounce.Token) {})
	second := d.Schedule(func(debounce.Token) {})

	assert.NotEqual(t, first, second)
	assert.False(t, d.Valid(first))
	assert.True(t, d.Valid(second))
}

func TestDebouncer_Stop(t *testing.T) {
	t.Parallel()

	d, clock := newManual()
	var calls int
	d.Schedule(func(debounce.Token) { calls++ })
	d.Stop()

	tok := d.Schedule(func(debounce.Token) { calls++ })
	assert.Equal(t, debounce.Token(0), tok)
	assert.False(t, d.Valid(tok))

	clock.Advance(time.Second)
	assert.Equal(t, 0, calls)
}

func TestDebouncer_DefaultDelay(t *testing.T) {
	t.Parallel()

	assert.Equal(t, debounce.DefaultDelay, debounce.New(0).Delay())
	assert.Equal(t, time.Second, debounce.New(time.Second).Delay())
}

func TestDebouncer_SystemClock(t *testing.T) {
	t.Parallel()

	d := debounce.New(20 * time.Millisecond)
	var calls atomic.Int32
	for range 5 {
		d.Schedule(func(debounce.Token) { calls.Add(1) })
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestManualClock(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := debounce.NewManualClock(start)

	var order []string
	clock.AfterFunc(2*time.Second, func() { order = append(order, "b") })
	clock.AfterFunc(time.Second, func() {
		order = append(order, "a")
		clock.AfterFunc(500*time.Millisecond, func() { order = append(order, "a2") })
	})
	stopped := clock.AfterFunc(1500*time.Millisecond, func() { order = append(order, "never") })

	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())

	clock.Advance(3 * time.Second)
	assert.Equal(t, []string{"a", "a2", "b"}, order)
	assert.Equal(t, start.Add(3*time.Second), clock.Now())
	assert.Equal(t, 0, clock.Pending())
}
