// Package cache provides the short-TTL summary cache keyed by drug name.
// The core transforms stay cache-free; this adapter sits between the HTTP
// layer and the fetch pipeline so repeated queries inside the TTL window
// never touch the upstream API.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/model"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/pkg/metrics"
)

// Default cache configuration constants.
const (
	// DefaultTTL mirrors the dashboard's 10-minute result cache.
	DefaultTTL           = 10 * time.Minute
	defaultSweepInterval = time.Minute
)

// Store provides read/write access to cached drug summaries.
type Store interface {
	// Get returns the cached summary for a drug key, if present and fresh.
	Get(ctx context.Context, drug string) (model.SafetySummary, bool)

	// Set stores a summary under the drug key with the configured TTL.
	Set(ctx context.Context, drug string, summary model.SafetySummary)

	// Len returns the number of live entries.
	Len(ctx context.Context) int

	// Close stops background maintenance.
	Close() error
}

type entry struct {
	summary model.SafetySummary
	expires time.Time
}

// MemoryStore implements Store with an RWMutex-guarded map and a janitor
// goroutine that sweeps expired entries.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	sweep   time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewMemoryStore creates a memory-backed cache and starts its janitor.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		sweep:   defaultSweepInterval,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.janitor()
	return s
}

// Get returns a fresh cached summary. Expired entries count as misses and
// are removed lazily.
func (s *MemoryStore) Get(ctx context.Context, drug string) (model.SafetySummary, bool) {
	s.mu.RLock()
	e, ok := s.entries[drug]
	s.mu.RUnlock()

	if !ok {
		metrics.RecordCacheMiss()
		return model.SafetySummary{}, false
	}
	if s.now().After(e.expires) {
		s.mu.Lock()
		delete(s.entries, drug)
		metrics.UpdateCacheSize(len(s.entries))
		s.mu.Unlock()
		metrics.RecordCacheMiss()
		return model.SafetySummary{}, false
	}
	metrics.RecordCacheHit()
	return e.summary, true
}

// Set stores a summary under the drug key.
func (s *MemoryStore) Set(ctx context.Context, drug string, summary model.SafetySummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[drug] = entry{summary: summary, expires: s.now().Add(s.ttl)}
	metrics.UpdateCacheSize(len(s.entries))
}

// Len returns the number of entries, expired ones included until swept.
func (s *MemoryStore) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the janitor. Safe to call more than once.
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(s.sweep)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.evictExpired()
		}
	}
}

func (s *MemoryStore) evictExpired() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, k)
		}
	}
	metrics.UpdateCacheSize(len(s.entries))
}
