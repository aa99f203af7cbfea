package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/smoketest"
)

// Default configuration constants.
const (
	defaultVariants    = 4
	defaultTopN        = 10
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 90 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

// defaultDrugs mirrors the watchlist the dashboard ships with.
const defaultDrugs = "semaglutide,adalimumab,pembrolizumab,apixaban,empagliflozin"

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		drugs    = flag.String("drugs", defaultDrugs, "Comma-separated drug names to query")
		variants = flag.Int("variants", defaultVariants, "Case/padding variants issued per drug")
		topN     = flag.Int("top", defaultTopN, "Reaction table size to request")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile  = flag.String("log", "", "Log file for test output (default: smoke_log_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoketest.ShowHelp()
		return
	}

	// Setup logging
	if err := smoketest.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	// Create test configuration
	config := &smoketest.Config{
		BaseURL:  *baseURL,
		Drugs:    strings.Split(*drugs, ","),
		Variants: *variants,
		TopN:     *topN,
		Workers:  *workers,
		Timeout:  *timeout,
		LogFile:  *logFile,
		Verbose:  *verbose,
	}

	// Run the test
	if err := smoketest.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Smoke test failed: " + err.Error() + "\n")
		return
	}
}
