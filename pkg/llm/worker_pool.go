package llm

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// WorkerPoolConfig configures the oracle worker pool.
type WorkerPoolConfig struct {
	MaxConcurrent int // Maximum concurrent oracle calls (default: 8)
}

// DefaultWorkerPoolConfig returns sensible defaults.
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		MaxConcurrent: 8,
	}
}

// WorkerPool runs oracle calls with bounded parallelism. A semaphore limits
// outstanding requests; each item writes its result into the slot matching
// its submission index, so callers get results back in submission order no
// matter which calls finish first.
type WorkerPool struct {
	config WorkerPoolConfig
	logger *zap.Logger
}

// NewWorkerPool creates a new oracle worker pool.
func NewWorkerPool(config WorkerPoolConfig, logger *zap.Logger) *WorkerPool {
	if config.MaxConcurrent < 1 {
		config.MaxConcurrent = 8
	}
	return &WorkerPool{
		config: config,
		logger: logger.Named("oracle-worker-pool"),
	}
}

// MaxConcurrent returns the configured concurrency bound.
func (p *WorkerPool) MaxConcurrent() int {
	return p.config.MaxConcurrent
}

// WorkItem represents a unit of work to be processed.
type WorkItem[T any] struct {
	ID      string                               // For logging/tracking
	Execute func(ctx context.Context) (T, error) // The work to be executed
}

// WorkResult represents the result of a work item.
type WorkResult[T any] struct {
	ID     string
	Result T
	Err    error
}

// Process executes all work items with bounded parallelism and returns one
// result per item, in submission order. Items that fail (or are cut off by
// context cancellation) carry their error in the corresponding slot; the
// remaining items still run to completion.
func Process[T any](
	ctx context.Context,
	pool *WorkerPool,
	items []WorkItem[T],
	onProgress func(completed, total int),
) []WorkResult[T] {
	if len(items) == 0 {
		return nil
	}

	results := make([]WorkResult[T], len(items))
	sem := make(chan struct{}, pool.config.MaxConcurrent)
	completions := make(chan struct{}, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()

			res := WorkResult[T]{ID: item.ID}
			select {
			case sem <- struct{}{}:
				res.Result, res.Err = item.Execute(ctx)
				<-sem
			case <-ctx.Done():
				res.Err = ctx.Err()
			}

			results[i] = res
			completions <- struct{}{}
		}()
	}

	go func() {
		wg.Wait()
		close(completions)
	}()

	// Draining the completion channel here keeps onProgress on a single
	// goroutine.
	completed := 0
	for range completions {
		completed++
		if onProgress != nil {
			onProgress(completed, len(items))
		}
	}

	return results
}
