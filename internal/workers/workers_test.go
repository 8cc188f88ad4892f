// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-myself-vault/internal/logger"
)

// recordingWorker appends its id to a shared slice on Run.
type recordingWorker struct {
	id    int
	order *[]int
}

func (r *recordingWorker) Run(context.Context) {
	*r.order = append(*r.order, r.id)
}

// stoppingWorker closes done once its context is cancelled.
type stoppingWorker struct {
	done chan struct{}
}

func newStoppingWorker() *stoppingWorker {
	return &stoppingWorker{done: make(chan struct{})}
}

func (s *stoppingWorker) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		close(s.done)
	}()
}

func (s *stoppingWorker) Done() <-chan struct{} { return s.done }

func TestWorkers_RunStartsAllInOrder(t *testing.T) {
	var order []int
	ws := NewWorkers(
		&recordingWorker{id: 1, order: &order},
		&recordingWorker{id: 2, order: &order},
		&recordingWorker{id: 3, order: &order},
	)

	ws.Run(context.Background())

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestWorkers_EmptyAndZeroValue(t *testing.T) {
	assert.NotPanics(t, func() { NewWorkers().Run(context.Background()) })
	assert.NotPanics(t, func() { (&Workers{}).Run(context.Background()) })
	assert.NoError(t, (&Workers{}).Wait(context.Background()))
}

func TestWorkers_WaitForStoppers(t *testing.T) {
	var order []int
	stopper := newStoppingWorker()
	sweeper := NewSessionSweeper(&countingPurger{}, time.Hour, logger.Nop())
	ws := NewWorkers(&recordingWorker{id: 1, order: &order}, stopper, sweeper)

	ctx, cancel := context.WithCancel(context.Background())
	ws.Run(ctx)
	cancel()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
	defer waitCancel()
	require.NoError(t, ws.Wait(waitCtx))

	assert.Equal(t, []int{1}, order)
	assert.NotNil(t, stopper.done)
}

func TestWorkers_WaitGivesUp(t *testing.T) {
	ws := NewWorkers(newStoppingWorker())
	ws.Run(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, ws.Wait(ctx), context.DeadlineExceeded)
}
