package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/post-board/internal/logger"
)

// Policy holds the admission settings.
type Policy struct {
	// Window is the length of both fixed windows.
	Window time.Duration

	// Limit is the hard cap per window.
	Limit int

	// DelayAfter is the number of requests per window served without delay.
	DelayAfter int

	// DelayStep is the extra delay per request over DelayAfter.
	DelayStep time.Duration

	// MaxDelay caps the delay. Zero means no cap.
	MaxDelay time.Duration
}

// Controller runs the hard cap and then the throttle for every request.
//
// The two policies count in separate stores. A request rejected by the hard
// cap never reaches the throttle, so it is neither delayed nor counted
// there.
//
// A failing store does not block traffic: the failure is logged and the
// policy it backs is skipped for that request.
type Controller struct {
	limiter  *Limiter
	throttle *Throttle
	sleep    func(ctx context.Context, d time.Duration) error
	logger   *logger.Logger
}

// Option customises a Controller.
type Option func(*Controller)

// WithClock replaces time.Now for both policies.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.limiter.now = now
		c.throttle.now = now
	}
}

// WithSleep replaces the function used to wait out throttle delays.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Controller) {
		c.sleep = sleep
	}
}

// NewController builds a controller for policy. limitStore backs the hard
// cap and throttleStore backs the throttle.
func NewController(policy Policy, limitStore, throttleStore Store, log *logger.Logger, opts ...Option) (*Controller, error) {
	limiter, err := NewLimiter(limitStore, policy.Limit, policy.Window)
	if err != nil {
		return nil, err
	}

	throttle, err := NewThrottle(throttleStore, policy.DelayAfter, policy.DelayStep, policy.MaxDelay)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		limiter:  limiter,
		throttle: throttle,
		sleep:    Sleep,
		logger:   log,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Admit applies both policies to a request from key.
//
// It returns ErrTooManyRequests when the hard cap rejects the request, and
// the context error when ctx ends during the throttle delay. In both cases
// the request must not proceed. The returned Decision is always filled so
// that rate limit headers can be written.
func (c *Controller) Admit(ctx context.Context, key string) (Decision, error) {
	decision, err := c.limiter.Allow(ctx, key)
	switch {
	case errors.Is(err, ErrTooManyRequests):
		return decision, err
	case err != nil:
		c.logger.Err(err).Str("ip", key).Msg("rate limiter store failed, admitting request")
		decision = c.limiter.open()
	}

	delay, err := c.throttle.Delay(ctx, key)
	if err != nil {
		c.logger.Err(err).Str("ip", key).Msg("throttle store failed, admitting request without delay")
		return decision, nil
	}

	decision.Delay = delay
	if err = c.sleep(ctx, delay); err != nil {
		return decision, fmt.Errorf("throttle wait aborted: %w", err)
	}

	return decision, nil
}
