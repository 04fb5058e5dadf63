package analyzer

import (
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// MapOrdered applies fn to every item with at most maxWorkers goroutines
// and returns the results in input order.
// If maxWorkers is <= 0, defaults to 2x NumCPU.
func MapOrdered[T, R any](items []T, maxWorkers int, fn func(T) R) []R {
	if len(items) == 0 {
		return nil
	}
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * 2
	}

	results := make([]R, len(items))
	p := pool.New().WithMaxGoroutines(maxWorkers)
	for i, item := range items {
		p.Go(func() {
			results[i] = fn(item)
		})
	}
	p.Wait()
	return results
}
