package smoketest

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "smoke_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the smoke test tool.
func ShowHelp() {
	os.Stdout.WriteString(`FAERS Dashboard Smoke Test Tool
===============================

A concurrent tool for exercising a running drug-safety dashboard and
verifying the shape of its summary tables.

Usage:
  go run cmd/smoke-test/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -drugs string
        Comma-separated drug names to query (default: the shipped watchlist)
  -variants int
        Case/padding variants issued per drug (default 4)
  -top int
        Reaction table size to request (default 10)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 90s)
  -log string
        Log file for test output (default: smoke_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Test the shipped watchlist against a local service
  go run cmd/smoke-test/main.go

  # Test specific drugs against another host
  go run cmd/smoke-test/main.go -drugs semaglutide,warfarin -url http://dashboard:9080

  # Heavier cache-coalescing exercise
  go run cmd/smoke-test/main.go -variants 16 -workers 16 -verbose
`)
}
