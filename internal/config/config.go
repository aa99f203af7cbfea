// Package config defines service configuration structures and loading hooks.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// BaseURL points at the openFDA event endpoint.
	BaseURL string `koanf:"base_url"`

	// APIKey is an optional openFDA api_key for higher rate limits.
	APIKey string `koanf:"api_key"`

	// FetchLimit is the full-record window per query (endpoint max 1000).
	FetchLimit int `koanf:"fetch_limit"`

	// TopReactions bounds the ranked side-effect table.
	TopReactions int `koanf:"top_reactions"`

	// Wildcard enables trailing-wildcard product matching.
	Wildcard bool `koanf:"wildcard"`

	// RequestTimeoutMS bounds each upstream attempt.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// MaxAttempts is the total upstream attempt budget per fetch.
	MaxAttempts int `koanf:"max_attempts"`

	// RateLimitPerMinute caps outbound upstream requests.
	RateLimitPerMinute int `koanf:"rate_limit_per_minute"`

	// CacheTTLSeconds is the freshness window for cached summaries.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// Watchlist lists the drug names the background refresher keeps warm.
	Watchlist []string `koanf:"watchlist"`

	// RefreshIntervalSeconds is the time between watchlist refresh cycles.
	RefreshIntervalSeconds int `koanf:"refresh_interval_seconds"`

	// RefreshWorkers bounds concurrent watchlist fetches within a cycle.
	RefreshWorkers int `koanf:"refresh_workers"`
}

// New creates a Config with defaults. The watchlist defaults to the five
// drugs the dashboard ships with.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		BaseURL:            "https://api.fda.gov/drug/event.json",
		FetchLimit:         1000,
		TopReactions:       10,
		RequestTimeoutMS:   20_000,
		MaxAttempts:        4,
		RateLimitPerMinute: 240,
		CacheTTLSeconds:    600,
		Watchlist: []string{
			"semaglutide",
			"adalimumab",
			"pembrolizumab",
			"apixaban",
			"empagliflozin",
		},
		RefreshIntervalSeconds: 540,
		RefreshWorkers:         2,
	}
}
