package ratelimiter

import "time"

// Config describes a bucket: it holds up to Capacity tokens and regains
// RefillRate of them every RefillInterval.
type Config struct {
	Capacity       int
	RefillRate     int
	RefillInterval time.Duration
}

// Result reports the bucket after a check.
type Result struct {
	Limit     int
	Remaining int
	// ResetAt is when the next refill happens.
	ResetAt time.Time
}

// Allowed reports whether the bucket covered the request.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// Exhausted reports whether the next request would be refused.
func (r *Result) Exhausted() bool {
	return r.Remaining <= 0
}

// RetryAfter returns how long after now a token becomes available, or 0
// while tokens remain.
func (r *Result) RetryAfter(now time.Time) time.Duration {
	if !r.Exhausted() {
		return 0
	}
	return max(r.ResetAt.Sub(now), 0)
}
