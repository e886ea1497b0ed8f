package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Decision describes the outcome of admitting one request.
type Decision struct {
	// Allowed is false when the hard cap rejected the request.
	Allowed bool

	// Limit is the hard cap per window.
	Limit int

	// Remaining is how many more requests the key may send in the current
	// window. Never negative.
	Remaining int

	// ResetAfter is the time left until the current window ends.
	ResetAfter time.Duration

	// Delay is the throttle delay applied before the request proceeded.
	Delay time.Duration
}

// Limiter is the fixed-window hard cap.
type Limiter struct {
	store  Store
	limit  int
	length time.Duration
	now    func() time.Time
}

// NewLimiter returns a limiter admitting at most limit requests per key in
// each window of length.
func NewLimiter(store Store, limit int, length time.Duration) (*Limiter, error) {
	if limit <= 0 || length <= 0 {
		return nil, fmt.Errorf("%w: limit %d, window %s", ErrInvalidPolicy, limit, length)
	}

	return &Limiter{store: store, limit: limit, length: length, now: time.Now}, nil
}

// Allow counts the request for key. The request is allowed while the count
// stays within the limit; past it Allow returns ErrTooManyRequests together
// with a Decision carrying the header values.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := l.now()

	window, err := l.store.Increment(ctx, key, now)
	if err != nil {
		return Decision{}, fmt.Errorf("error incrementing rate limit counter: %w", err)
	}

	decision := Decision{
		Allowed:    window.Count <= l.limit,
		Limit:      l.limit,
		Remaining:  max(l.limit-window.Count, 0),
		ResetAfter: window.ResetAt(l.length).Sub(now),
	}
	if !decision.Allowed {
		return decision, ErrTooManyRequests
	}

	return decision, nil
}

// open returns the decision used when the counter store is unavailable.
func (l *Limiter) open() Decision {
	return Decision{Allowed: true, Limit: l.limit, Remaining: l.limit, ResetAfter: l.length}
}
