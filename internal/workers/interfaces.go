// Package workers provides abstractions for managing background workers of
// the sync client: the connectivity probe and the background sync job.
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers as one.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start launches the worker's goroutine and returns immediately; the worker
// runs until ctx is cancelled or Stop is called. Stop blocks until the
// goroutine has exited and is safe to call on a worker that is not running.
//
// Example implementation:
//
//	type MyWorker struct{ cancel context.CancelFunc }
//
//	func (w *MyWorker) Start(ctx context.Context) {
//	    ctx, w.cancel = context.WithCancel(ctx)
//	    go loop(ctx)
//	}
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
