package smoketest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}

// getJSON fetches url and decodes the response into v. Non-200 statuses are
// errors carrying the status code.
func getJSON(ctx context.Context, client *HTTPClient, url string, v interface{}) error {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode body: %w", err)
	}
	return nil
}

// querySummaries runs the query plan concurrently and collects one summary
// per canonical drug name. Variants of the same drug race on purpose; the
// service should coalesce them onto one upstream fetch.
func querySummaries(ctx context.Context, config *Config, queries []query, stats *Stats) (map[string]Summary, error) {
	log.Printf("📤 Issuing %d summary queries with %d workers...", len(queries), config.Workers)

	client := newHTTPClient(config.Timeout)

	var (
		issued     int64
		successful int64
		failed     int64
	)

	var mu sync.Mutex
	summaries := make(map[string]Summary, len(config.Drugs))

	queryChan := make(chan query, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for q := range queryChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				var s Summary
				url := config.BaseURL + "/summary/" + q.spelled
				atomic.AddInt64(&issued, 1)
				if err := getJSON(ctx, client, url, &s); err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Printf("⚠️  Query failed for %q: %v", q.spelled, err)
					}
					continue
				}
				atomic.AddInt64(&successful, 1)

				mu.Lock()
				if _, seen := summaries[q.drug]; !seen {
					summaries[q.drug] = s
				}
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(queryChan)
		for _, q := range queries {
			select {
			case <-ctx.Done():
				return
			case queryChan <- q:
			}
		}
	}()

	wg.Wait()

	stats.QueriesIssued = int(atomic.LoadInt64(&issued))
	stats.QueriesSuccessful = int(atomic.LoadInt64(&successful))
	stats.QueriesFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Summary queries completed:
   Successful: %d
   Failed: %d
`, stats.QueriesSuccessful, stats.QueriesFailed)

	if stats.QueriesSuccessful == 0 {
		return nil, fmt.Errorf("all %d queries failed", stats.QueriesIssued)
	}
	return summaries, nil
}

// fetchTrend retrieves the /trend table for one drug.
func fetchTrend(ctx context.Context, client *HTTPClient, baseURL, drug string) ([]YearCount, error) {
	var out struct {
		Years []YearCount `json:"years"`
	}
	if err := getJSON(ctx, client, baseURL+"/trend/"+drug, &out); err != nil {
		return nil, err
	}
	return out.Years, nil
}

// fetchReactions retrieves the ranked /reactions table for one drug.
func fetchReactions(ctx context.Context, client *HTTPClient, baseURL, drug string, limit int) ([]ReactionRow, error) {
	var out struct {
		Reactions []ReactionRow `json:"reactions"`
	}
	url := fmt.Sprintf("%s/reactions/%s?limit=%d", baseURL, drug, limit)
	if err := getJSON(ctx, client, url, &out); err != nil {
		return nil, err
	}
	return out.Reactions, nil
}

// fetchCountries retrieves the /countries table for one drug, optionally
// filtered to the map-ready subset.
func fetchCountries(ctx context.Context, client *HTTPClient, baseURL, drug string, mappedOnly bool) ([]CountryRow, error) {
	var out struct {
		Countries []CountryRow `json:"countries"`
	}
	url := baseURL + "/countries/" + drug
	if mappedOnly {
		url += "?mapped=true"
	}
	if err := getJSON(ctx, client, url, &out); err != nil {
		return nil, err
	}
	return out.Countries, nil
}
