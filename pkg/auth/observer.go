package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/storefront/pkg/logger"
)

// Observer mirrors the session state of a feed for code that polls it, such
// as a screen deciding whether to show the sign-in form.
type Observer struct {
	feed *SessionFeed
	log  *slog.Logger

	mu        sync.RWMutex
	current   *User
	listeners map[uint64]func(*User)
	nextID    uint64

	cancel context.CancelFunc
	done   chan struct{}
}

// ObserverOption configures an Observer.
type ObserverOption func(*Observer)

// WithObserverLogger sets the logger used for session transitions.
func WithObserverLogger(l *slog.Logger) ObserverOption {
	return func(o *Observer) {
		if l != nil {
			o.log = l
		}
	}
}

// NewObserver creates an observer for feed. Call Start to begin listening.
func NewObserver(feed *SessionFeed, opts ...ObserverOption) *Observer {
	o := &Observer{
		feed:      feed,
		log:       logger.Discard(),
		listeners: make(map[uint64]func(*User)),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start subscribes to the feed. Calling Start on a running observer does nothing.
func (o *Observer) Start(ctx context.Context) {
	o.mu.Lock()
	if o.cancel != nil {
		o.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.done = make(chan struct{})
	done := o.done
	o.mu.Unlock()

	sub := o.feed.Subscribe(ctx)
	go func() {
		defer close(done)
		for u := range sub.Updates() {
			o.apply(ctx, u)
		}
	}()
}

// Stop unsubscribes and waits for the listener goroutine to exit.
func (o *Observer) Stop() {
	o.mu.Lock()
	cancel, done := o.cancel, o.done
	o.cancel, o.done = nil, nil
	o.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (o *Observer) apply(ctx context.Context, u *User) {
	o.mu.Lock()
	o.current = u
	listeners := make([]func(*User), 0, len(o.listeners))
	for _, fn := range o.listeners {
		listeners = append(listeners, fn)
	}
	o.mu.Unlock()

	if u == nil {
		o.log.InfoContext(ctx, "session ended", logger.Component("auth"))
	} else {
		o.log.InfoContext(ctx, "session started", logger.Component("auth"), logger.UserID(u.UID))
	}

	for _, fn := range listeners {
		fn(u.clone())
	}
}

// Current returns the last observed user, or nil.
func (o *Observer) Current() *User {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.current.clone()
}

func (o *Observer) IsSignedIn() bool {
	return o.Current() != nil
}

// OnChange registers fn for every observed transition and returns a function
// that removes it. fn runs on the observer goroutine.
func (o *Observer) OnChange(fn func(*User)) (remove func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := o.nextID
	o.nextID++
	o.listeners[id] = fn
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.listeners, id)
	}
}
