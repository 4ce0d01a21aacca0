// Package fanout provides an order-preserving bounded worker pool.
package fanout

import (
	"context"
	"sync"
)

// Map applies fn to every input using at most workers goroutines and returns
// the results in input order, regardless of completion order. Each result is
// written to the slot matching its input index, so slot i always holds
// fn(inputs[i]).
//
// If the context is cancelled, remaining inputs are skipped and their slots
// keep the zero value of R.
func Map[T, R any](ctx context.Context, inputs []T, workers int, fn func(ctx context.Context, index int, in T) R) []R {
	results := make([]R, len(inputs))
	if len(inputs) == 0 {
		return results
	}

	if workers < 1 {
		workers = 1
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = fn(ctx, i, inputs[i])
			}
		}()
	}

	for i := range inputs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return results
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
