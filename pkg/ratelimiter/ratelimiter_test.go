package ratelimiter_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/storefront/pkg/ratelimiter"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newBucket(t *testing.T, cfg ratelimiter.Config) (*ratelimiter.Bucket, *ratelimiter.MemoryStore, *clock) {
	t.Helper()
	clk := &clock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clk.Now))
	t.Cleanup(func() { _ = store.Close() })

	b, err := ratelimiter.NewBucket(store, cfg)
	require.NoError(t, err)
	return b, store, clk
}

var attempts = ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Minute}

func TestBucketAllow(t *testing.T) {
	t.Parallel()

	t.Run("allows up to capacity", func(t *testing.T) {
		t.Parallel()
		b, _, _ := newBucket(t, attempts)
		ctx := context.Background()

		for want := 2; want >= 0; want-- {
			res, err := b.Allow(ctx, "k")
			require.NoError(t, err)
			assert.True(t, res.Allowed())
			assert.Equal(t, want, res.Remaining)
			assert.Equal(t, 3, res.Limit)
		}

		res, err := b.Allow(ctx, "k")
		require.NoError(t, err)
		assert.False(t, res.Allowed())
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		b, store, _ := newBucket(t, attempts)
		ctx := context.Background()

		for range 4 {
			_, err := b.Allow(ctx, "a")
			require.NoError(t, err)
		}
		res, err := b.Allow(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Remaining)
		assert.Equal(t, 2, store.Len())
	})

	t.Run("refills over time", func(t *testing.T) {
		t.Parallel()
		b, _, clk := newBucket(t, attempts)
		ctx := context.Background()

		for range 3 {
			_, err := b.Allow(ctx, "k")
			require.NoError(t, err)
		}
		status, err := b.Status(ctx, "k")
		require.NoError(t, err)
		assert.True(t, status.Exhausted())
		assert.Equal(t, time.Minute, status.RetryAfter(clk.Now()))

		clk.Advance(2 * time.Minute)
		status, err = b.Status(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 2, status.Remaining)
		assert.Zero(t, status.RetryAfter(clk.Now()))
	})

	t.Run("never exceeds capacity", func(t *testing.T) {
		t.Parallel()
		b, _, clk := newBucket(t, attempts)
		ctx := context.Background()

		_, err := b.Allow(ctx, "k")
		require.NoError(t, err)
		clk.Advance(24 * time.Hour)

		status, err := b.Status(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 3, status.Remaining)
	})

	t.Run("reset forgets the key", func(t *testing.T) {
		t.Parallel()
		b, store, _ := newBucket(t, attempts)
		ctx := context.Background()

		for range 3 {
			_, err := b.Allow(ctx, "k")
			require.NoError(t, err)
		}
		require.NoError(t, b.Reset(ctx, "k"))
		assert.Zero(t, store.Len())

		res, err := b.Allow(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Remaining)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		b, _, _ := newBucket(t, attempts)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := b.Allow(ctx, "k")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBucketAllowN(t *testing.T) {
	t.Parallel()
	b, _, _ := newBucket(t, attempts)

	_, err := b.AllowN(context.Background(), "k", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)

	res, err := b.AllowN(context.Background(), "k", 3)
	require.NoError(t, err)
	assert.Zero(t, res.Remaining)
}

func TestNewBucketValidation(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	defer store.Close()

	tests := []struct {
		name string
		cfg  ratelimiter.Config
	}{
		{"zero capacity", ratelimiter.Config{RefillRate: 1, RefillInterval: time.Second}},
		{"zero refill rate", ratelimiter.Config{Capacity: 1, RefillInterval: time.Second}},
		{"zero interval", ratelimiter.Config{Capacity: 1, RefillRate: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ratelimiter.NewBucket(store, tt.cfg)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}

	_, err := ratelimiter.NewBucket(nil, attempts)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
}

func TestMemoryStoreCloseTwice(t *testing.T) {
	t.Parallel()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(time.Millisecond))
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
