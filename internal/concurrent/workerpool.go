// Package concurrent provides a bounded task group for independent jobs.
package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// WorkerPool runs jobs with a bounded number of goroutines
type WorkerPool struct {
	workerCount int
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(workerCount int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = 1
	}
	return &WorkerPool{
		workerCount: workerCount,
	}
}

// Workers returns the concurrency limit
func (wp *WorkerPool) Workers() int {
	return wp.workerCount
}

// RunAll executes every function without cancelling the others on error and
// waits for all of them. The returned slice is indexed like functions; entries
// are nil for functions that succeeded. Functions not started before ctx is
// done get ctx.Err().
func (wp *WorkerPool) RunAll(ctx context.Context, functions ...func(ctx context.Context) error) []error {
	if len(functions) == 0 {
		return nil
	}

	errs := make([]error, len(functions))

	g := new(errgroup.Group)
	g.SetLimit(wp.workerCount)

	for i, fn := range functions {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return nil
			default:
			}

			// Each goroutine owns errs[i]
			errs[i] = fn(ctx)
			return nil
		})
	}

	// Always nil: errors are collected per slot instead of short-circuiting the group
	_ = g.Wait()

	return errs
}
