package limiter

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter paces outgoing API calls. It never retries anything; a call
// that fails after Wait is the caller's problem.
type RateLimiter struct {
	bucket *rate.Limiter
}

// NewRateLimiter allows requestsPerSecond calls per second with a burst of
// one. A non-positive rate disables pacing.
func NewRateLimiter(requestsPerSecond float64) *RateLimiter {
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}
	return &RateLimiter{
		bucket: rate.NewLimiter(limit, 1),
	}
}

// Wait blocks until the next call may be made or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}

// Allow reports whether a call may be made right now.
func (r *RateLimiter) Allow() bool {
	return r.bucket.Allow()
}
