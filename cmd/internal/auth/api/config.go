package authapi

import (
	"net/http"
	"os"
	"strconv"
	"strings"
)

// Config controls auth API behavior and cookie transport defaults.
//
// The session credential travels only in an HTTP-only cookie; these knobs are
// deployment configuration, not protocol contract.
type Config struct {
	CookieName     string
	CookiePath     string
	CookieDomain   string
	CookieSecure   bool
	CookieSameSite http.SameSite

	MaxBodyBytes int64
}

// LoadConfigFromEnv loads auth config from environment variables with safe defaults.
//
// Env surface:
//   - NOTEKEEP_COOKIE_NAME (default "notekeep_session")
//   - NOTEKEEP_COOKIE_PATH (default "/")
//   - NOTEKEEP_COOKIE_DOMAIN (default empty: host-only)
//   - NOTEKEEP_COOKIE_SECURE (default true)
//   - NOTEKEEP_COOKIE_SAMESITE (lax|strict|none; default lax)
//   - NOTEKEEP_AUTH_MAX_BODY_BYTES (default 1 MiB)
func LoadConfigFromEnv() Config {
	cfg := Config{
		CookieName:     envString("NOTEKEEP_COOKIE_NAME", "notekeep_session"),
		CookiePath:     envString("NOTEKEEP_COOKIE_PATH", "/"),
		CookieDomain:   envString("NOTEKEEP_COOKIE_DOMAIN", ""),
		CookieSecure:   envBool("NOTEKEEP_COOKIE_SECURE", true),
		CookieSameSite: parseSameSite(envString("NOTEKEEP_COOKIE_SAMESITE", "lax")),
		MaxBodyBytes:   envInt64("NOTEKEEP_AUTH_MAX_BODY_BYTES", 1<<20),
	}

	if cfg.CookieName == "" {
		cfg.CookieName = "notekeep_session"
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = "/"
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}

	return cfg
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
