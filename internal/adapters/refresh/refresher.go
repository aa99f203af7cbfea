// Package refresh keeps the summary cache warm for a configured drug
// watchlist so interactive queries rarely pay the upstream fetch.
package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/pkg/logger"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/pkg/metrics"
)

// Default refresher configuration constants.
const (
	// DefaultInterval refreshes slightly inside the 10-minute cache TTL
	// so watched drugs never go cold.
	DefaultInterval = 9 * time.Minute
	defaultWorkers  = 2
)

// Summarizer is the piece of the service the refresher drives.
type Summarizer interface {
	Refresh(ctx context.Context, drug string) error
}

// Refresher periodically re-fetches every watchlist drug with a small worker
// loop. Retry behavior lives in the fetch client; the refresher just skips a
// failed drug until the next cycle.
type Refresher struct {
	svc       Summarizer
	watchlist []string
	interval  time.Duration
	workers   int

	stop chan struct{}
	done chan struct{}
	once sync.Once

	logger logger.Logger
}

// New creates a refresher for the given watchlist.
func New(svc Summarizer, watchlist []string, opts ...Option) *Refresher {
	r := &Refresher{
		svc:       svc,
		watchlist: watchlist,
		interval:  DefaultInterval,
		workers:   defaultWorkers,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start launches the refresh loop. It warms the watchlist once immediately,
// then again every interval. No-op for an empty watchlist.
func (r *Refresher) Start(ctx context.Context) {
	if r.logger == nil {
		r.logger = logger.Get().Named("refresh")
	}
	if len(r.watchlist) == 0 {
		close(r.done)
		return
	}

	go func() {
		defer close(r.done)

		r.cycle(ctx)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-r.stop:
				return
			case <-ticker.C:
				r.cycle(ctx)
			}
		}
	}()
}

// Stop signals the loop to end and waits for it.
func (r *Refresher) Stop() {
	r.once.Do(func() { close(r.stop) })
	<-r.done
}

// cycle warms every watchlist drug using a bounded worker group.
func (r *Refresher) cycle(ctx context.Context) {
	start := time.Now()
	jobs := make(chan string)

	var wg sync.WaitGroup
	wg.Add(r.workers)
	for i := 0; i < r.workers; i++ {
		go func() {
			defer wg.Done()
			for drug := range jobs {
				if err := r.svc.Refresh(ctx, drug); err != nil {
					metrics.RecordRefreshError()
					r.logger.Warn(ctx, "watchlist refresh failed",
						logger.String("drug", drug),
						logger.Error(err),
					)
				}
			}
		}()
	}

	for _, drug := range r.watchlist {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		case jobs <- drug:
		}
	}
	close(jobs)
	wg.Wait()

	metrics.RecordRefreshCycle()
	r.logger.Info(ctx, "watchlist refresh cycle complete",
		logger.Int("drugs", len(r.watchlist)),
		logger.Duration("took", time.Since(start)),
	)
}
