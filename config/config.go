package config

import (
	"fmt"
	"os"
)

// Config holds the connection parameters the service cannot run without,
// plus the optional knobs that have defaults.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	Port        string

	// Optional Twilio credentials; SMS forwarding stays off without them.
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	// Cron expression for the periodic reconciliation sweep.
	ResyncSchedule string
}

// Load reads configuration from the process environment. A missing required
// value is returned as an error the caller must treat as fatal: running
// with a broken store connection is worse than not starting.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:      os.Getenv("DB_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		Port:             os.Getenv("PORT"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
		ResyncSchedule:   os.Getenv("RESYNC_SCHEDULE"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DB_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.ResyncSchedule == "" {
		cfg.ResyncSchedule = "@hourly"
	}
	return cfg, nil
}

// SMSEnabled reports whether outbound SMS forwarding is configured.
func (c *Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}
