package workers

import "context"

// Workers starts a fixed set of background workers and waits for the ones
// that report completion.
type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in order. Workers are expected to return
// immediately and stop when ctx is done.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Wait blocks until every worker implementing Stopper has stopped, or ctx
// is done. Call it after cancelling the context passed to Run and before
// closing anything the workers use.
func (w *Workers) Wait(ctx context.Context) error {
	for _, worker := range w.workers {
		s, ok := worker.(Stopper)
		if !ok {
			continue
		}
		select {
		case <-s.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
