package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/adapters/cache"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/adapters/http/api"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/adapters/http/swagger"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/adapters/openfda"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/adapters/refresh"
	service "github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/app"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/config"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 60 * time.Second // summary queries can ride out upstream retries
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	client := openfda.New(
		openfda.WithBaseURL(cfg.BaseURL),
		openfda.WithAPIKey(cfg.APIKey),
		openfda.WithRequestTimeout(time.Duration(cfg.RequestTimeoutMS)*time.Millisecond),
		openfda.WithMaxAttempts(cfg.MaxAttempts),
		openfda.WithRateLimit(cfg.RateLimitPerMinute),
	)

	store := cache.NewMemoryStore(
		cache.WithTTL(time.Duration(cfg.CacheTTLSeconds) * time.Second),
	)

	svc := service.New(
		service.WithLogger(log),
		service.WithFetcher(client),
		service.WithCache(store),
		service.WithFetchLimit(cfg.FetchLimit),
		service.WithTopReactions(cfg.TopReactions),
		service.WithWildcard(cfg.Wildcard),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Keep the configured watchlist warm in the background.
	warmer := refresh.New(svc, cfg.Watchlist,
		refresh.WithInterval(time.Duration(cfg.RefreshIntervalSeconds)*time.Second),
		refresh.WithWorkers(cfg.RefreshWorkers),
	)
	warmer.Start(ctx)
	defer warmer.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}
