package sampledata

import "time"

// Config holds configuration for a sample data run.
type Config struct {
	OutputDir string        // Directory or storage URL the inputs are written to
	Visitors  int           // Number of visitors to generate
	BaseURL   string        // Service to verify against; empty skips verification
	Timeout   time.Duration // HTTP request timeout
	Verbose   bool          // Enable verbose logging

	// Every Nth visitor signs up. Of those, every AliasEvery-th registers
	// under a typo domain covered by an alias, and every TypoEvery-th signed
	// up with a misspelled local part that only the fuzzy report can catch.
	SignupEvery int
	AliasEvery  int
	TypoEvery   int

	Morning   []string // Session names for the morning slot
	Afternoon []string // Session names for the afternoon slot
}

// Stats holds run statistics.
type Stats struct {
	Visitors      int
	Signups       int
	Aliases       int
	Typos         int
	ExpectedExact int
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}
