package cache

import "time"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithTTL sets how long a cached summary stays fresh.
func WithTTL(ttl time.Duration) Option {
	return func(s *MemoryStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSweepInterval sets how often the janitor evicts expired entries.
func WithSweepInterval(d time.Duration) Option {
	return func(s *MemoryStore) {
		if d > 0 {
			s.sweep = d
		}
	}
}

// WithClock replaces the time source so tests can expire entries instantly.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}
