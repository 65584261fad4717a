// Package ratelimiter provides a token bucket limiter over a pluggable store.
//
// A bucket holds up to Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each Allow call takes one token; a negative Remaining in
// the Result means the caller is over the limit.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//	if err != nil {
//		return err
//	}
//
//	res, err := limiter.Allow(ctx, "sign-in:user@example.com")
//	if err != nil {
//		return err
//	}
//	if !res.Allowed() {
//		wait := res.RetryAfter(time.Now())
//		// ...
//	}
//
// The auth package uses a Bucket to lock an account after repeated failed
// sign-in attempts. Status inspects a key without consuming a token and Reset
// forgets it.
//
// MemoryStore keeps buckets in process memory and drops the ones that have
// not been touched for an hour. Close stops its cleanup goroutine.
package ratelimiter
