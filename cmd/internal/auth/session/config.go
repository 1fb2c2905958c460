package session

import (
	"os"
	"strconv"
	"time"
)

// Config defines runtime configuration for the session subsystem.
//
// It controls the session TTL, the entropy size of opaque tokens, and the
// interval of the expired-session janitor. This struct is intentionally
// explicit and environment-driven so production deployments can tune security
// parameters without code changes.
type Config struct {
	// TTL is the fixed lifetime of a session from issuance.
	TTL time.Duration

	// TokenBytes is the number of random bytes used to generate opaque
	// session tokens.
	TokenBytes int

	// PurgeInterval controls how often expired session rows are reaped.
	// Zero disables the janitor; validation remains lazy either way.
	PurgeInterval time.Duration
}

// DefaultConfig returns a secure default configuration.
func DefaultConfig() Config {
	return Config{
		TTL:           24 * time.Hour,
		TokenBytes:    32,
		PurgeInterval: time.Hour,
	}
}

// LoadConfigFromEnv loads session configuration from environment variables.
//
// Optional (durations must be valid Go duration strings):
//   - NOTEKEEP_SESSION_TTL
//   - NOTEKEEP_SESSION_TOKEN_BYTES (32..64)
//   - NOTEKEEP_SESSION_PURGE_INTERVAL ("0" disables the janitor)
//
// Returns ErrConfig if configuration is invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("NOTEKEEP_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.TTL = d
	}

	if v := os.Getenv("NOTEKEEP_SESSION_TOKEN_BYTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 32 || n > 64 {
			return Config{}, ErrConfig
		}
		cfg.TokenBytes = n
	}

	if v := os.Getenv("NOTEKEEP_SESSION_PURGE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, ErrConfig
		}
		cfg.PurgeInterval = d
	}

	return cfg, nil
}
