package service

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxConcurrency is used when a configured worker count is invalid
const DefaultMaxConcurrency = 4

// ParallelExecutor runs per-item work with bounded concurrency while
// preserving input order in the results, so parallel runs produce
// byte-identical output to sequential ones.
type ParallelExecutor struct {
	maxConcurrency int
}

// NewParallelExecutor creates an executor using the CPU count
func NewParallelExecutor() *ParallelExecutor {
	return &ParallelExecutor{maxConcurrency: runtime.NumCPU()}
}

// NewParallelExecutorWithWorkers creates an executor with an explicit
// worker count; non-positive values select the CPU count
func NewParallelExecutorWithWorkers(workers int) *ParallelExecutor {
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers <= 0 {
			workers = DefaultMaxConcurrency
		}
	}
	return &ParallelExecutor{maxConcurrency: workers}
}

// MapOrdered applies fn to every item and returns the results in input
// order. The first error cancels the remaining work via the group
// context and is returned.
func MapOrdered[T, R any](ctx context.Context, e *ParallelExecutor, items []T, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	results := make([]R, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxConcurrency)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			r, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
