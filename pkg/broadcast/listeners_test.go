package broadcast_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/storefront/pkg/broadcast"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestListeners_Publish(t *testing.T) {
	t.Parallel()

	var (
		l   broadcast.Listeners[int]
		got []string
	)
	l.Add(func(v int) { got = append(got, "a", string(rune('0'+v))) })
	l.Add(func(v int) { got = append(got, "b", string(rune('0'+v))) })

	l.Publish(1)
	l.Publish(2)

	assert.Equal(t, []string{"a", "1", "b", "1", "a", "2", "b", "2"}, got)
}

func TestListeners_EnqueueWithoutListeners(t *testing.T) {
	t.Parallel()

	var l broadcast.Listeners[int]
	l.Enqueue(1)

	var got []int
	l.Add(func(v int) { got = append(got, v) })
	l.Drain()
	assert.Empty(t, got)

	l.Publish(2)
	assert.Equal(t, []int{2}, got)
}

func TestListeners_Remove(t *testing.T) {
	t.Parallel()

	var (
		l   broadcast.Listeners[int]
		got []int
	)
	remove := l.Add(func(v int) { got = append(got, v) })
	require.Equal(t, 1, l.Len())

	l.Publish(1)
	remove()
	remove()
	l.Publish(2)

	assert.Equal(t, []int{1}, got)
	assert.Zero(t, l.Len())
}

func TestListeners_Reentrant(t *testing.T) {
	t.Parallel()

	var (
		l   broadcast.Listeners[int]
		got []int
	)
	l.Add(func(v int) {
		got = append(got, v)
		if v < 3 {
			// Delivered after this callback returns, not nested inside it.
			l.Publish(v + 1)
			got = append(got, -v)
		}
	})

	l.Publish(1)
	assert.Equal(t, []int{1, -1, 2, -2, 3}, got)
}

func TestListeners_Close(t *testing.T) {
	t.Parallel()

	var (
		l     broadcast.Listeners[int]
		calls int
	)
	l.Add(func(int) { calls++ })
	l.Close()

	l.Publish(1)
	l.Add(func(int) { calls++ })()
	l.Publish(2)

	assert.Zero(t, calls)
	assert.Zero(t, l.Len())
}

func TestListeners_ConcurrentPublish(t *testing.T) {
	t.Parallel()

	var (
		l      broadcast.Listeners[int]
		mu     sync.Mutex
		active int
		seen   int
	)
	l.Add(func(int) {
		mu.Lock()
		active++
		overlap := active > 1
		seen++
		mu.Unlock()

		assert.False(t, overlap, "callbacks overlapped")

		mu.Lock()
		active--
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Publish(i)
		}()
	}
	wg.Wait()
	l.Drain()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 20, seen)
}
