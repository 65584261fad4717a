package auth

import (
	"context"
	"sync"
)

const subscriptionBuffer = 4

// SessionFeed fans session transitions out to subscribers. New subscribers
// receive the current user first, then every later transition. A subscriber
// that falls behind loses the oldest pending update, never the newest one.
// All methods are safe for concurrent use.
type SessionFeed struct {
	mu          sync.RWMutex
	current     *User
	subscribers map[*Subscription]struct{}
	closed      bool
	cleanupWg   sync.WaitGroup
}

// NewSessionFeed creates a feed whose initial state is signed out.
func NewSessionFeed() *SessionFeed {
	return &SessionFeed{
		subscribers: make(map[*Subscription]struct{}),
	}
}

// Current returns a copy of the last published user, or nil.
func (f *SessionFeed) Current() *User {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current.clone()
}

// Publish records u as the session state and notifies subscribers.
// Publishing the state already held is ignored, so each sign-in and sign-out
// is delivered once.
func (f *SessionFeed) Publish(u *User) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || sameSession(f.current, u) {
		return
	}
	f.current = u.clone()

	for sub := range f.subscribers {
		sub.send(f.current.clone())
	}
}

// Subscribe registers a subscription that lives until ctx is cancelled,
// Close is called on it, or the feed is closed.
func (f *SessionFeed) Subscribe(ctx context.Context) *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub := newSubscription()
	if f.closed {
		sub.close()
		return sub
	}

	sub.send(f.current.clone())
	f.subscribers[sub] = struct{}{}
	sub.feed = f

	f.cleanupWg.Add(1)
	go func() {
		defer f.cleanupWg.Done()
		select {
		case <-ctx.Done():
			f.unsubscribe(sub)
		case <-sub.done:
		}
	}()

	return sub
}

// Close closes every subscription. Later Subscribe calls return closed
// subscriptions and Publish does nothing.
func (f *SessionFeed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	for sub := range f.subscribers {
		sub.close()
	}
	clear(f.subscribers)
	f.mu.Unlock()

	f.cleanupWg.Wait()
	return nil
}

func (f *SessionFeed) unsubscribe(sub *Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.subscribers, sub)
	sub.close()
}

func sameSession(a, b *User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Subscription receives session updates. A nil *User means signed out.
type Subscription struct {
	ch     chan *User
	done   chan struct{}
	feed   *SessionFeed
	closed bool
	mu     sync.Mutex
}

func newSubscription() *Subscription {
	return &Subscription{
		ch:   make(chan *User, subscriptionBuffer),
		done: make(chan struct{}),
	}
}

// Updates returns the channel of session states. It is closed when the
// subscription ends.
func (s *Subscription) Updates() <-chan *User {
	return s.ch
}

// Close ends the subscription. It is idempotent.
func (s *Subscription) Close() error {
	if s.feed != nil {
		s.feed.unsubscribe(s)
		return nil
	}
	s.close()
	return nil
}

func (s *Subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
	close(s.done)
}

func (s *Subscription) send(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	select {
	case s.ch <- u:
		return
	default:
	}

	// Full: drop the oldest pending state to make room for the newest.
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- u:
	default:
	}
}
