package bearing

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

type options struct {
	workers int
}

// Option tunes how grids and footing lists are evaluated.
type Option func(*options)

// WithWorkers bounds the number of points evaluated at once. n <= 0 uses
// GOMAXPROCS; n == 1 evaluates sequentially.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// mapIndexed runs fn for every index in [0, n). Each call owns its index, so
// callers write results into pre-sized slices. Once an index fails, higher
// indices are skipped; the error of the lowest failing index is returned,
// which makes the reported error independent of scheduling.
func mapIndexed(n, workers int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}
	errs := make([]error, n)
	var first atomic.Int64
	first.Store(int64(n))

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if int64(i) > first.Load() {
				return nil
			}
			if err := fn(i); err != nil {
				errs[i] = err
				for {
					cur := first.Load()
					if int64(i) >= cur || first.CompareAndSwap(cur, int64(i)) {
						break
					}
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
