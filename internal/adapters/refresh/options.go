package refresh

import (
	"time"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/pkg/logger"
)

// Option applies a configuration option to the Refresher.
type Option func(*Refresher)

// WithInterval sets the time between refresh cycles.
func WithInterval(d time.Duration) Option {
	return func(r *Refresher) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithWorkers sets how many drugs refresh concurrently within a cycle.
func WithWorkers(n int) Option {
	return func(r *Refresher) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets a custom logger for the refresher.
func WithLogger(l logger.Logger) Option {
	return func(r *Refresher) {
		if l != nil {
			r.logger = l
		}
	}
}
