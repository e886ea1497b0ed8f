package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/post-board/internal/config"
	"github.com/MKhiriev/post-board/internal/utils"
)

var fastParams = utils.Argon2Params{Memory: 1024, Time: 1, Threads: 1}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
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

// sequenceIDs returns "id-1", "id-2", ...
type sequenceIDs struct {
	mu   sync.Mutex
	next int
}

func (s *sequenceIDs) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("id-%d", s.next)
}

func testAppConfig() config.App {
	return config.App{
		PasswordHashKey: "pepper",
		TokenSignKey:    "sign-key",
		TokenIssuer:     "post-board",
		TokenDuration:   7 * 24 * time.Hour,
	}
}

func testOptions(clock *fakeClock) []Option {
	return []Option{
		WithClock(clock.Now),
		WithIDGenerator(&sequenceIDs{}),
		WithArgon2Params(fastParams),
	}
}
