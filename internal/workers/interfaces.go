// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import (
	"context"
	"time"
)

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that starts the worker's execution.
//
// Implementations are expected to block until ctx is cancelled.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}

// Sweeper is a counter store whose expired entries can be dropped.
type Sweeper interface {
	Sweep(now time.Time) int
	Len() int
}

// SizeReporter receives the number of entries left in a store after a sweep.
type SizeReporter interface {
	SetStoreKeys(store string, keys int)
}
