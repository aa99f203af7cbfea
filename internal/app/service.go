// Package service provides the core business service that implements
// the dependencies required by the HTTP API: one entry point per drug name,
// returning the three cleaned summary tables.
package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/adapters/cache"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/adapters/openfda"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/aggregate"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/model"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/normalize"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/query"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/pkg/logger"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/pkg/metrics"
)

// Fetcher is the upstream capability the service depends on. Tests inject a
// double that serves scripted batches with no network.
type Fetcher interface {
	Fetch(ctx context.Context, params url.Values) ([]model.RawReport, error)
}

// Service runs the fetch-then-transform pipeline per drug query. Each query
// owns its own batch and derived tables; the only state shared between
// queries is the TTL cache and the in-flight coalescing group.
type Service struct {
	mu sync.RWMutex

	fetcher Fetcher
	cache   cache.Store
	group   singleflight.Group

	fetchLimit   int
	topReactions int
	wildcard     bool
	cacheTTL     time.Duration

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFetcher sets the upstream fetcher.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithCache sets the summary cache.
func WithCache(c cache.Store) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithFetchLimit sets the full-record window requested per query.
func WithFetchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.fetchLimit = n
		}
	}
}

// WithTopReactions sets how many ranked reaction terms each summary carries.
func WithTopReactions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topReactions = n
		}
	}
}

// WithWildcard enables trailing-wildcard product matching.
func WithWildcard(enabled bool) Option {
	return func(s *Service) {
		s.wildcard = enabled
	}
}

// WithCacheTTL sets the TTL used when the service builds its own cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		fetchLimit:   query.DefaultLimit,
		topReactions: aggregate.DefaultTopReactions,
		cacheTTL:     cache.DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.fetcher == nil {
		s.fetcher = openfda.New()
	}
	if s.cache == nil {
		s.cache = cache.NewMemoryStore(cache.WithTTL(s.cacheTTL))
	}

	s.started = true
	s.logger.Info(ctx, "drug safety service started",
		logger.Int("fetchLimit", s.fetchLimit),
		logger.Int("topReactions", s.topReactions),
		logger.Duration("cacheTTL", s.cacheTTL),
	)
	return nil
}

// Stop releases service resources.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.cache != nil {
		_ = s.cache.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "drug safety service stopped")
}

// Summary answers one drug query from cache when fresh, otherwise runs the
// pipeline once even under concurrent identical requests.
func (s *Service) Summary(ctx context.Context, drug string) (model.SafetySummary, error) {
	key, err := normalizeDrug(drug)
	if err != nil {
		return model.SafetySummary{}, err
	}

	if summary, ok := s.cache.Get(ctx, key); ok {
		metrics.RecordQueryServed()
		return summary, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		// Re-check: an in-flight twin may have filled the cache already.
		if summary, ok := s.cache.Get(ctx, key); ok {
			return summary, nil
		}
		summary, err := s.run(ctx, key)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, key, summary)
		return summary, nil
	})
	if err != nil {
		return model.SafetySummary{}, err
	}
	metrics.RecordQueryServed()
	return v.(model.SafetySummary), nil
}

// Refresh runs the pipeline regardless of cache freshness and stores the
// result. The watchlist warmer uses it to keep interactive queries warm.
func (s *Service) Refresh(ctx context.Context, drug string) error {
	key, err := normalizeDrug(drug)
	if err != nil {
		return err
	}
	summary, err := s.run(ctx, key)
	if err != nil {
		return err
	}
	s.cache.Set(ctx, key, summary)
	return nil
}

// run executes one fetch-then-transform pipeline. The three aggregations
// only read the normalized batch, so their order is irrelevant.
func (s *Service) run(ctx context.Context, drug string) (model.SafetySummary, error) {
	start := time.Now()

	var opts []query.Option
	if s.wildcard {
		opts = append(opts, query.WithWildcard())
	}
	params := query.Build(drug, s.fetchLimit, opts...)

	raws, err := s.fetcher.Fetch(ctx, params)
	if err != nil {
		return model.SafetySummary{}, fmt.Errorf("fetch %q: %w", drug, err)
	}

	reports, skipped := normalize.Batch(raws)
	if skipped > 0 {
		metrics.RecordMalformedRecords(skipped)
		s.logger.Warn(ctx, "skipped malformed records",
			logger.String("drug", drug),
			logger.Int("skipped", skipped),
		)
	}

	summary := model.SafetySummary{
		Drug:        drug,
		SampleSize:  len(reports),
		SampleBasis: fmt.Sprintf("most recent %d FAERS reports", len(raws)),
		FetchedAt:   time.Now().UTC(),
		Years:       aggregate.Years(reports),
		Reactions:   aggregate.TopReactions(reports, aggregate.WithTopN(s.topReactions)),
		Countries:   aggregate.Countries(reports),
	}

	metrics.RecordQueryDuration(float64(time.Since(start).Milliseconds()))
	s.logger.Info(ctx, "summary built",
		logger.String("drug", drug),
		logger.Int("sampleSize", summary.SampleSize),
		logger.Int("years", len(summary.Years)),
		logger.Int("reactions", len(summary.Reactions)),
		logger.Int("countries", len(summary.Countries)),
		logger.Duration("took", time.Since(start)),
	)
	return summary, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"fetchLimit":   s.fetchLimit,
		"topReactions": s.topReactions,
	}
	if s.started && s.cache != nil {
		stats["cacheEntries"] = s.cache.Len(context.Background())
	}
	return stats
}

// normalizeDrug canonicalizes a drug name into the cache/query key.
func normalizeDrug(drug string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(drug))
	if key == "" {
		return "", ErrEmptyDrug
	}
	return key, nil
}
