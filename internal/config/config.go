// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and BADGER_ env vars on top of the defaults.
// - Errors returned from this package wrap ErrLoadConfig or ErrInvalidConfig.
package config

// SessionConfig declares a breakout session and the seats left in it.
type SessionConfig struct {
	Name     string `koanf:"name"`
	Capacity int    `koanf:"capacity"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// VisitorsPath points at the visitors CSV (with header).
	VisitorsPath string `koanf:"visitors_path"`

	// SignupsPath points at the breakout signups CSV (no header).
	SignupsPath string `koanf:"signups_path"`

	// AliasesPath points at the email alias YAML. Empty disables aliases.
	AliasesPath string `koanf:"aliases_path"`

	// QRDir is where rendered QR images are written.
	QRDir string `koanf:"qr_dir"`

	// QRWorkers is how many badges render in parallel; 0 means one per CPU.
	QRWorkers int `koanf:"qr_workers"`

	// BadgesPerPage sizes /badge/{page} and /api/badges/{page}.
	BadgesPerPage int `koanf:"badges_per_page"`

	// MorningSessions and AfternoonSessions are the ordered session catalogs.
	// A list set in a config file replaces the default list wholesale.
	MorningSessions   []SessionConfig `koanf:"morning_sessions"`
	AfternoonSessions []SessionConfig `koanf:"afternoon_sessions"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":9080",
		VisitorsPath:  "./data/visitors.csv",
		SignupsPath:   "./data/breakout.csv",
		AliasesPath:   "./data/email_mapping.yaml",
		QRDir:         "./static/qrcodes",
		BadgesPerPage: 25,
		MorningSessions: []SessionConfig{
			{Name: "Thinking OPs: What the hell does production mean for Data & AI?", Capacity: 20},
			{Name: "Integral thinking and understanding different perspectives: A key element in successful innovation projects", Capacity: 14},
			{Name: "Setting up your company for big data product development: 3 lessons learned at ACME", Capacity: 0},
		},
		AfternoonSessions: []SessionConfig{
			{Name: "Roundtable: The power of data science to drive sustainable energy solutions", Capacity: 3},
			{Name: "Building a data strategy that fits your data maturity: A hands-on workshop", Capacity: 16},
			{Name: "Building a successful data-driven startup: Essential steps to follow", Capacity: 15},
		},
	}
}
