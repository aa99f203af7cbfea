// Package openfda fetches adverse-event report batches from the openFDA
// FAERS endpoint with bounded retry on transient failure.
package openfda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/model"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/pkg/logger"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/pkg/metrics"
)

// Default client configuration constants.
const (
	DefaultBaseURL     = "https://api.fda.gov/drug/event.json"
	defaultTimeout     = 20 * time.Second
	defaultMaxAttempts = 4
	defaultBackoffBase = time.Second
)

// Doer abstracts the HTTP transport so tests can script responses.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Sleeper waits for the given duration or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Client issues GET requests against the event endpoint. Each call is
// independent; the client holds no per-query state and is safe for
// concurrent use.
type Client struct {
	base        string
	doer        Doer
	sleep       Sleeper
	maxAttempts int
	backoffBase time.Duration
	timeout     time.Duration
	limiter     *rate.Limiter
	apiKey      string
	logger      logger.Logger
}

// New creates a client with the default endpoint, timeout and retry budget.
func New(opts ...Option) *Client {
	c := &Client{
		base:        DefaultBaseURL,
		maxAttempts: defaultMaxAttempts,
		backoffBase: defaultBackoffBase,
		timeout:     defaultTimeout,
		sleep:       sleepWithContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.doer == nil {
		c.doer = &http.Client{Timeout: c.timeout}
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("openfda")
	}
	return c
}

// envelope is the upstream response shape. A missing results key is the
// API's way of signaling zero matches; it decodes to a nil slice here.
type envelope struct {
	Results []json.RawMessage `json:"results"`
}

// Fetch runs one GET with the given query parameters, retrying transient
// failures (5xx, 429, connection errors) on a 1s/2s/4s schedule up to the
// attempt budget. It returns ErrUpstreamRejected for terminal 4xx responses
// and ErrUpstreamUnavailable once retries are exhausted; raw transport
// errors never reach the caller. An empty batch is a valid success.
func (c *Client) Fetch(ctx context.Context, params url.Values) ([]model.RawReport, error) {
	bo := newBackoff(c.maxAttempts, c.backoffBase)

	for {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limit wait: %w", ErrUpstreamUnavailable)
			}
		}

		batch, retry, err := c.attempt(ctx, params)
		if err == nil {
			metrics.RecordRecordsFetched(len(batch))
			return batch, nil
		}
		if !retry {
			metrics.RecordUpstreamFailure("rejected")
			return nil, err
		}

		delay, ok := bo.Next()
		if !ok {
			metrics.RecordUpstreamFailure("exhausted")
			c.logger.Error(ctx, "upstream retries exhausted",
				logger.Int("attempts", bo.Attempts()),
				logger.Error(err),
			)
			return nil, fmt.Errorf("after %d attempts: %w", bo.Attempts(), ErrUpstreamUnavailable)
		}

		metrics.RecordUpstreamRetry()
		c.logger.Warn(ctx, "transient upstream failure, backing off",
			logger.Int("attempt", bo.Attempts()-1),
			logger.String("delay", delay.String()),
			logger.Error(err),
		)
		if err := c.sleep(ctx, delay); err != nil {
			return nil, fmt.Errorf("backoff interrupted: %w", ErrUpstreamUnavailable)
		}
	}
}

// attempt performs a single request. The middle return value marks the
// failure as transient (retryable) or terminal.
func (c *Client) attempt(ctx context.Context, params url.Values) ([]model.RawReport, bool, error) {
	q := url.Values{}
	for k, vs := range params {
		q[k] = vs
	}
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, c.base+"?"+q.Encode(), nil)
	if err != nil {
		// A URL the stdlib refuses to build will never succeed.
		return nil, false, fmt.Errorf("%w: %v", ErrUpstreamRejected, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.doer.Do(req)
	metrics.RecordUpstreamLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		// Connection-level trouble: timeout, reset, DNS. Transient class.
		metrics.RecordUpstreamRequest("transport_error")
		return nil, true, fmt.Errorf("transport: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordUpstreamRequest(fmt.Sprintf("%dxx", resp.StatusCode/100))

	switch {
	case resp.StatusCode == http.StatusOK:
		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			// A garbled 200 body is server trouble, same as a 5xx.
			return nil, true, fmt.Errorf("decode body: %v", err)
		}
		return env.Results, false, nil

	case resp.StatusCode == http.StatusNotFound:
		// openFDA signals zero matches with 404; a successful empty result.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, false, nil

	case retryable(resp.StatusCode):
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, true, fmt.Errorf("status %d", resp.StatusCode)

	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, false, fmt.Errorf("%w: status %d", ErrUpstreamRejected, resp.StatusCode)
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
