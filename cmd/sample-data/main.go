package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/badger/internal/config"
	"github.com/okian/badger/internal/sampledata"
	"github.com/viant/afs"
)

const defaultRunTimeout = 5 * time.Minute

func main() {
	var (
		outDir      = flag.String("out", "./data", "Output directory or storage URL")
		visitors    = flag.Int("visitors", sampledata.DefaultVisitors, "Number of visitors to generate")
		signupEvery = flag.Int("signup-every", sampledata.DefaultSignupEvery, "Every Nth visitor signs up")
		aliasEvery  = flag.Int("alias-every", sampledata.DefaultAliasEvery, "Every Nth signup uses an aliased typo domain")
		typoEvery   = flag.Int("typo-every", sampledata.DefaultTypoEvery, "Every Nth signup has a misspelled local part")
		baseURL     = flag.String("url", "", "Base URL of a service started on the output")
		timeout     = flag.Duration("timeout", sampledata.DefaultTimeout, "HTTP request timeout")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sampledata.ShowHelp()
		return
	}

	if err := sampledata.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Sessions follow the service defaults so generated signups name real sessions.
	defaults := config.New()
	cfg := &sampledata.Config{
		OutputDir:   *outDir,
		Visitors:    *visitors,
		BaseURL:     *baseURL,
		Timeout:     *timeout,
		Verbose:     *verbose,
		SignupEvery: *signupEvery,
		AliasEvery:  *aliasEvery,
		TypoEvery:   *typoEvery,
		Morning:     sessionNames(defaults.MorningSessions),
		Afternoon:   sessionNames(defaults.AfternoonSessions),
	}

	if _, err := sampledata.Run(ctx, afs.New(), cfg); err != nil {
		os.Stderr.WriteString("Sample data run failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}

func sessionNames(in []config.SessionConfig) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, s.Name)
	}
	return out
}
