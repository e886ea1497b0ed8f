package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Window is the counter state of one key within one fixed window.
type Window struct {
	// Count is the number of requests seen in the window, including the
	// current one.
	Count int

	// Start is the instant of the first request of the window.
	Start time.Time
}

// ResetAt returns the instant the window ends for the given window length.
func (w Window) ResetAt(length time.Duration) time.Time {
	return w.Start.Add(length)
}

// Store counts requests per key in fixed windows.
//
// Increment must be atomic per key: concurrent calls for the same key never
// lose an increment. When the window of key has elapsed at now, a new window
// starting at now is opened with Count = 1.
type Store interface {
	Increment(ctx context.Context, key string, now time.Time) (Window, error)
}

// MemoryStore is the in-process Store. A single mutex guards the map, which
// keeps increments atomic and is cheap at the request rates one process
// serves.
type MemoryStore struct {
	mu      sync.Mutex
	length  time.Duration
	windows map[string]*Window
}

// NewMemoryStore returns an empty store whose windows last length.
func NewMemoryStore(length time.Duration) *MemoryStore {
	return &MemoryStore{
		length:  length,
		windows: make(map[string]*Window),
	}
}

// Increment implements Store.
func (s *MemoryStore) Increment(_ context.Context, key string, now time.Time) (Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || !now.Before(w.ResetAt(s.length)) {
		w = &Window{Count: 1, Start: now}
		s.windows[key] = w
		return *w, nil
	}

	w.Count++
	return *w, nil
}

// Sweep removes every window that has elapsed at now and returns how many
// were removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, w := range s.windows {
		if !now.Before(w.ResetAt(s.length)) {
			delete(s.windows, key)
			removed++
		}
	}

	return removed
}

// Len returns the number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.windows)
}
