package smoketest

import (
	"context"
	"fmt"
	"time"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/pkg/logger"
)

// Run executes the complete dashboard smoke test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting dashboard smoke test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("drugs", len(config.Drugs)),
		logger.Int("variants", config.Variants),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Build the query plan
	queries := generateQueries(ctx, config, stats)
	if len(queries) == 0 {
		return fmt.Errorf("query plan is empty")
	}

	// Step 3: Issue summary queries concurrently
	summaries, err := querySummaries(ctx, config, queries, stats)
	if err != nil {
		return fmt.Errorf("summary queries failed: %w", err)
	}

	// Step 4: Verify table invariants and endpoint consistency
	if err := verifyResults(ctx, config, summaries, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "smoke test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, queriesPerSecond float64

	if stats.QueriesIssued > 0 {
		successRate = float64(stats.QueriesSuccessful) / float64(stats.QueriesIssued) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		queriesPerSecond = float64(stats.QueriesIssued) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("queriesPlanned", stats.QueriesPlanned),
		logger.Int("queriesIssued", stats.QueriesIssued),
		logger.Int("queriesSuccessful", stats.QueriesSuccessful),
		logger.Int("queriesFailed", stats.QueriesFailed),
		logger.Int("drugsVerified", stats.DrugsVerified),
		logger.Int("verificationErrors", stats.VerificationErrors),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("queriesPerSecond", queriesPerSecond))
}
