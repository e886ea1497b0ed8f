// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount atomic.Int32
}

func (m *mockWorker) Run(ctx context.Context) {
	m.runCount.Add(1)
	<-ctx.Done()
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	ws := NewWorkers(w1, w2, w3)
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	cancel()
	<-done

	for i, w := range []*mockWorker{w1, w2, w3} {
		if got := w.runCount.Load(); got != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, got)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{workers: []Worker{}}

	// Should return immediately on empty workers list
	ws.Run(context.Background())
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(context.Background())
}

// blockingWorker returns only after ctx is cancelled.
type blockingWorker struct {
	started chan struct{}
}

func (b *blockingWorker) Run(ctx context.Context) {
	close(b.started)
	<-ctx.Done()
}

func TestWorkers_Run_BlocksUntilCancelled(t *testing.T) {
	w := &blockingWorker{started: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		NewWorkers(w).Run(ctx)
		close(done)
	}()

	<-w.started
	select {
	case <-done:
		t.Fatal("Run returned before ctx was cancelled")
	case <-time.After(20 * time.Millisecond):
	}

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after ctx was cancelled")
	}
}

// fakeStore counts sweeps and pretends to drop one entry per sweep.
type fakeStore struct {
	mu     sync.Mutex
	size   int
	sweeps []time.Time
}

func (f *fakeStore) Sweep(now time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sweeps = append(f.sweeps, now)
	if f.size == 0 {
		return 0
	}
	f.size--
	return 1
}

func (f *fakeStore) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.size
}

type recordingReporter struct {
	mu    sync.Mutex
	sizes map[string]int
	calls chan struct{}
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{sizes: map[string]int{}, calls: make(chan struct{}, 16)}
}

func (r *recordingReporter) SetStoreKeys(store string, keys int) {
	r.mu.Lock()
	r.sizes[store] = keys
	r.mu.Unlock()

	select {
	case r.calls <- struct{}{}:
	default:
	}
}
