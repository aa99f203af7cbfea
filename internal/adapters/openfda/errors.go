package openfda

import "errors"

// Sentinel kinds for upstream fetch errors.
var (
	// ErrUpstreamUnavailable means every retry attempt was exhausted
	// against a transient-class failure (5xx, 429, connection trouble).
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamRejected means the upstream refused the request with a
	// non-retryable status; the query will not succeed on retry.
	ErrUpstreamRejected = errors.New("upstream rejected query")
)
