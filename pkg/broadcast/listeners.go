package broadcast

import "sync"

type entry[T any] struct {
	id uint64
	fn func(T)
}

// Listeners is a set of callbacks fed from an ordered queue.
// The zero value is ready to use. All methods are safe for concurrent use.
type Listeners[T any] struct {
	mu       sync.Mutex
	entries  []entry[T]
	nextID   uint64
	queue    []T
	draining bool
	closed   bool
}

// Add registers fn and returns a function that removes it. Callbacks run in
// registration order. Add after Close returns a no-op remover.
func (l *Listeners[T]) Add(fn func(T)) (remove func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || fn == nil {
		return func() {}
	}

	id := l.nextID
	l.nextID++
	l.entries = append(l.entries, entry[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(id) })
	}
}

func (l *Listeners[T]) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.id == id {
			// Copy so a drain holding the old slice is unaffected.
			next := make([]entry[T], 0, len(l.entries)-1)
			next = append(next, l.entries[:i]...)
			l.entries = append(next, l.entries[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered callbacks.
func (l *Listeners[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Enqueue appends v to the delivery queue without running callbacks.
// Values queued while no callback is registered are dropped.
func (l *Listeners[T]) Enqueue(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || len(l.entries) == 0 {
		return
	}
	l.queue = append(l.queue, v)
}

// Drain delivers queued values until the queue is empty. When another
// goroutine is already draining, Drain returns at once and leaves the
// values to it.
func (l *Listeners[T]) Drain() {
	l.mu.Lock()
	if l.draining {
		l.mu.Unlock()
		return
	}
	l.draining = true
	for len(l.queue) > 0 {
		v := l.queue[0]
		var zero T
		l.queue[0] = zero
		l.queue = l.queue[1:]
		entries := l.entries
		l.mu.Unlock()

		for _, e := range entries {
			e.fn(v)
		}

		l.mu.Lock()
	}
	l.queue = nil
	l.draining = false
	l.mu.Unlock()
}

// Publish enqueues v and drains the queue.
func (l *Listeners[T]) Publish(v T) {
	l.Enqueue(v)
	l.Drain()
}

// Close removes every callback and discards queued values. Later calls to
// Add and Enqueue have no effect.
func (l *Listeners[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.entries = nil
	l.queue = nil
}
