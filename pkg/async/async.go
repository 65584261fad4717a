package async

import (
	"context"
	"sync"
	"time"
)

// Future is the eventual result of a call started with Async.
type Future[U any] struct {
	mu        sync.Mutex
	result    U
	err       error
	completed bool
	callbacks []func(U, error)
	done      chan struct{}
}

func newFuture[U any]() *Future[U] {
	return &Future[U]{done: make(chan struct{})}
}

// Resolved returns a future that is already complete.
func Resolved[U any](result U, err error) *Future[U] {
	f := newFuture[U]()
	f.complete(result, err)
	return f
}

// complete stores the result, runs the callbacks, then releases waiters, so
// Await returns only after every callback registered before completion ran.
func (f *Future[U]) complete(result U, err error) {
	f.mu.Lock()
	f.result, f.err = result, err
	f.completed = true
	callbacks := f.callbacks
	f.callbacks = nil
	f.mu.Unlock()

	for _, fn := range callbacks {
		fn(result, err)
	}
	close(f.done)
}

// Then registers fn to run with the result. It runs on the goroutine that
// completes the future, or immediately when the future is already complete.
func (f *Future[U]) Then(fn func(U, error)) {
	f.mu.Lock()
	if f.completed {
		result, err := f.result, f.err
		f.mu.Unlock()
		fn(result, err)
		return
	}
	f.callbacks = append(f.callbacks, fn)
	f.mu.Unlock()
}

// Await blocks until the call returns.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext blocks until the call returns or ctx is done. It does not
// cancel the call itself.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout is Await bounded by timeout. It returns ErrTimeout when
// the call is still running.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-f.done:
		return f.result, f.err
	case <-t.C:
		var zero U
		return zero, ErrTimeout
	}
}

// Done is closed once the result is available and every callback has run.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// IsComplete reports without blocking whether the future is done.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async runs fn(ctx, param) in its own goroutine. When ctx is already
// cancelled fn is not called and the future completes with ctx.Err().
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := newFuture[U]()

	go func() {
		if err := ctx.Err(); err != nil {
			var zero U
			f.complete(zero, err)
			return
		}

		res, err := fn(ctx, param)
		f.complete(res, err)
	}()

	return f
}
