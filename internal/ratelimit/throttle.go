package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Throttle is the progressive slow-down policy. Within one window, request
// n of a key is delayed by (n - delayAfter) * step once n exceeds
// delayAfter. A positive maxDelay caps the delay.
type Throttle struct {
	store      Store
	delayAfter int
	step       time.Duration
	maxDelay   time.Duration
	now        func() time.Time
}

// NewThrottle returns a throttle counting in store.
func NewThrottle(store Store, delayAfter int, step, maxDelay time.Duration) (*Throttle, error) {
	if delayAfter < 0 || step < 0 || maxDelay < 0 {
		return nil, fmt.Errorf("%w: delay after %d, step %s, max delay %s", ErrInvalidPolicy, delayAfter, step, maxDelay)
	}

	return &Throttle{store: store, delayAfter: delayAfter, step: step, maxDelay: maxDelay, now: time.Now}, nil
}

// Delay counts the request for key and returns how long it must wait.
func (t *Throttle) Delay(ctx context.Context, key string) (time.Duration, error) {
	window, err := t.store.Increment(ctx, key, t.now())
	if err != nil {
		return 0, fmt.Errorf("error incrementing throttle counter: %w", err)
	}

	return t.delayFor(window.Count), nil
}

func (t *Throttle) delayFor(count int) time.Duration {
	over := count - t.delayAfter
	if over <= 0 {
		return 0
	}

	delay := time.Duration(over) * t.step
	if t.maxDelay > 0 && delay > t.maxDelay {
		return t.maxDelay
	}

	return delay
}

// Sleep blocks for d or until ctx is done, whichever comes first. It returns
// the context error when ctx ended the wait.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
