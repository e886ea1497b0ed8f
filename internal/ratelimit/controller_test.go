package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/post-board/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingSleep records requested delays without blocking.
type recordingSleep struct {
	delays []time.Duration
}

func (s *recordingSleep) Sleep(_ context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return nil
}

// failingStore always fails.
type failingStore struct{}

func (failingStore) Increment(context.Context, string, time.Time) (Window, error) {
	return Window{}, errors.New("store unavailable")
}

var defaultPolicy = Policy{
	Window:     time.Minute,
	Limit:      60,
	DelayAfter: 30,
	DelayStep:  500 * time.Millisecond,
}

func newTestController(t *testing.T, policy Policy, clock *fakeClock, sleep *recordingSleep) *Controller {
	t.Helper()

	c, err := NewController(policy,
		NewMemoryStore(policy.Window), NewMemoryStore(policy.Window),
		logger.Nop(),
		WithClock(clock.Now), WithSleep(sleep.Sleep))
	require.NoError(t, err)
	return c
}

// ── hard cap ─────────────────────────────────────────────────────────────────

func TestController_SixtyFirstRequestRejected(t *testing.T) {
	clock := &fakeClock{now: epoch}
	sleep := &recordingSleep{}
	c := newTestController(t, defaultPolicy, clock, sleep)
	ctx := context.Background()

	for i := 1; i <= 60; i++ {
		d, err := c.Admit(ctx, "203.0.113.7")
		require.NoError(t, err, "request %d", i)
		assert.True(t, d.Allowed)
		assert.Equal(t, 60, d.Limit)
		assert.Equal(t, 60-i, d.Remaining)
		clock.Advance(100 * time.Millisecond)
	}

	d, err := c.Admit(ctx, "203.0.113.7")
	assert.ErrorIs(t, err, ErrTooManyRequests)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Equal(t, time.Minute-6*time.Second, d.ResetAfter)

	// other clients are unaffected
	_, err = c.Admit(ctx, "203.0.113.8")
	assert.NoError(t, err)

	// the rejected request was not seen by the throttle
	assert.Len(t, sleep.delays, 61)
}

func TestController_WindowRollover(t *testing.T) {
	clock := &fakeClock{now: epoch}
	c := newTestController(t, defaultPolicy, clock, &recordingSleep{})
	ctx := context.Background()

	for range 61 {
		_, _ = c.Admit(ctx, "ip")
	}
	_, err := c.Admit(ctx, "ip")
	require.ErrorIs(t, err, ErrTooManyRequests)

	clock.Advance(time.Minute)

	d, err := c.Admit(ctx, "ip")
	require.NoError(t, err)
	assert.Equal(t, 59, d.Remaining)
	assert.Equal(t, time.Minute, d.ResetAfter)
}

// ── throttle ─────────────────────────────────────────────────────────────────

func TestController_ProgressiveDelay(t *testing.T) {
	clock := &fakeClock{now: epoch}
	sleep := &recordingSleep{}
	c := newTestController(t, defaultPolicy, clock, sleep)
	ctx := context.Background()

	for range 60 {
		_, err := c.Admit(ctx, "ip")
		require.NoError(t, err)
	}

	require.Len(t, sleep.delays, 60)
	for i, delay := range sleep.delays {
		n := i + 1
		if n <= 30 {
			assert.Zero(t, delay, "request %d", n)
			continue
		}
		assert.Equal(t, time.Duration(n-30)*500*time.Millisecond, delay, "request %d", n)
		assert.Greater(t, delay, sleep.delays[i-1], "delays must strictly increase")
	}
}

func TestController_MaxDelayCaps(t *testing.T) {
	policy := defaultPolicy
	policy.MaxDelay = 2 * time.Second
	sleep := &recordingSleep{}
	c := newTestController(t, policy, &fakeClock{now: epoch}, sleep)

	for range 40 {
		_, _ = c.Admit(context.Background(), "ip")
	}

	assert.Equal(t, 1500*time.Millisecond, sleep.delays[32])
	assert.Equal(t, 2*time.Second, sleep.delays[33])
	assert.Equal(t, 2*time.Second, sleep.delays[39])
}

func TestController_CancelledWait(t *testing.T) {
	policy := defaultPolicy
	policy.DelayAfter = 0
	policy.DelayStep = time.Hour

	c, err := NewController(policy, NewMemoryStore(time.Minute), NewMemoryStore(time.Minute), logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	d, err := c.Admit(ctx, "ip")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, time.Hour, d.Delay)
	assert.Less(t, time.Since(start), time.Second)
}

// ── store failures ───────────────────────────────────────────────────────────

func TestController_FailsOpen(t *testing.T) {
	sleep := &recordingSleep{}
	c, err := NewController(defaultPolicy, failingStore{}, failingStore{}, logger.Nop(), WithSleep(sleep.Sleep))
	require.NoError(t, err)

	for range 100 {
		d, err := c.Admit(context.Background(), "ip")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, 60, d.Remaining)
	}
	assert.Empty(t, sleep.delays)
}

// ── construction ─────────────────────────────────────────────────────────────

func TestNewController_InvalidPolicy(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Policy)
	}{
		{"zero limit", func(p *Policy) { p.Limit = 0 }},
		{"zero window", func(p *Policy) { p.Window = 0 }},
		{"negative delay after", func(p *Policy) { p.DelayAfter = -1 }},
		{"negative step", func(p *Policy) { p.DelayStep = -time.Second }},
		{"negative max delay", func(p *Policy) { p.MaxDelay = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := defaultPolicy
			tt.modify(&policy)
			_, err := NewController(policy, NewMemoryStore(time.Minute), NewMemoryStore(time.Minute), logger.Nop())
			assert.ErrorIs(t, err, ErrInvalidPolicy)
		})
	}
}

func TestSleep(t *testing.T) {
	assert.NoError(t, Sleep(context.Background(), 0))
	assert.NoError(t, Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.DeadlineExceeded)
}
