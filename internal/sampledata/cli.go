package sampledata

import (
	"fmt"
	"os"

	"github.com/okian/badger/pkg/logger"
)

// SetupLogging initializes the logger, at debug level when verbose is set.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the sample data tool.
func ShowHelp() {
	os.Stdout.WriteString(`Badger Sample Data Tool
=======================

Generates visitors, breakout signups and email aliases for the badge service,
and optionally checks a running service against them.

Usage:
  go run ./cmd/sample-data [options]

Options:
  -out string
        Output directory or storage URL (default "./data")
  -visitors int
        Number of visitors to generate (default 120)
  -signup-every int
        Every Nth visitor signs up for breakouts (default 3)
  -alias-every int
        Every Nth signup uses an aliased typo domain (default 4)
  -typo-every int
        Every Nth signup has a misspelled local part (default 5)
  -url string
        Base URL of a service started on the output; empty skips verification
  -timeout duration
        HTTP request timeout (default 30s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Write the default inputs to ./data
  go run ./cmd/sample-data

  # Check a service that was started on them
  go run ./cmd/sample-data -url http://localhost:9080
`)
}
