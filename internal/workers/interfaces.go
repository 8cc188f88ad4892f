// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that starts the worker's execution.
//
// Implementations are expected to return quickly and keep working in a
// goroutine of their own until ctx is done.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    go func() { <-ctx.Done() }()
//	}
type Worker interface {
	Run(ctx context.Context)
}

// Stopper is implemented by workers that report when their goroutine has
// exited.
type Stopper interface {
	Done() <-chan struct{}
}

// SessionPurger destroys expired sessions.
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int, error)
}
