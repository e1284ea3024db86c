package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.VisitorsPath == "" {
		return fmt.Errorf("%w: visitors_path must not be empty", ErrInvalidConfig)
	}
	if c.SignupsPath == "" {
		return fmt.Errorf("%w: signups_path must not be empty", ErrInvalidConfig)
	}
	if c.QRDir == "" {
		return fmt.Errorf("%w: qr_dir must not be empty", ErrInvalidConfig)
	}
	if c.QRWorkers < 0 {
		return fmt.Errorf("%w: qr_workers must not be negative, got %d", ErrInvalidConfig, c.QRWorkers)
	}
	if c.BadgesPerPage <= 0 {
		return fmt.Errorf("%w: badges_per_page must be positive, got %d", ErrInvalidConfig, c.BadgesPerPage)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if err := validateSessions("morning_sessions", c.MorningSessions); err != nil {
		return err
	}
	return validateSessions("afternoon_sessions", c.AfternoonSessions)
}

func validateSessions(key string, sessions []SessionConfig) error {
	if len(sessions) == 0 {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, key)
	}
	seen := make(map[string]struct{}, len(sessions))
	for i, s := range sessions {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("%w: %s[%d] has no name", ErrInvalidConfig, key, i)
		}
		if s.Capacity < 0 {
			return fmt.Errorf("%w: %s[%d] %q has negative capacity %d", ErrInvalidConfig, key, i, s.Name, s.Capacity)
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("%w: %s has duplicate session %q", ErrInvalidConfig, key, s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}
