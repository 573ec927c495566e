package config

import (
	"os"
	"time"
)

// Timeouts holds configurable timeout values.
type Timeouts struct {
	Request time.Duration // Upper bound for a single Jira REST call
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - JIRASEED_TIMEOUT_REQUEST (default: 60s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Request: parseDuration("JIRASEED_TIMEOUT_REQUEST", 60*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}
