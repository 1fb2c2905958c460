package authapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnvDefaults(t *testing.T) {
	for _, k := range []string{
		"NOTEKEEP_COOKIE_NAME",
		"NOTEKEEP_COOKIE_PATH",
		"NOTEKEEP_COOKIE_DOMAIN",
		"NOTEKEEP_COOKIE_SECURE",
		"NOTEKEEP_COOKIE_SAMESITE",
		"NOTEKEEP_AUTH_MAX_BODY_BYTES",
	} {
		t.Setenv(k, "")
	}

	cfg := LoadConfigFromEnv()
	require.Equal(t, "notekeep_session", cfg.CookieName)
	require.Equal(t, "/", cfg.CookiePath)
	require.Empty(t, cfg.CookieDomain)
	require.True(t, cfg.CookieSecure)
	require.Equal(t, http.SameSiteLaxMode, cfg.CookieSameSite)
	require.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
}

func TestLoadConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("NOTEKEEP_COOKIE_NAME", "sid")
	t.Setenv("NOTEKEEP_COOKIE_SECURE", "false")
	t.Setenv("NOTEKEEP_COOKIE_SAMESITE", "strict")
	t.Setenv("NOTEKEEP_AUTH_MAX_BODY_BYTES", "4096")

	cfg := LoadConfigFromEnv()
	require.Equal(t, "sid", cfg.CookieName)
	require.False(t, cfg.CookieSecure)
	require.Equal(t, http.SameSiteStrictMode, cfg.CookieSameSite)
	require.Equal(t, int64(4096), cfg.MaxBodyBytes)
}

func TestParseSameSite(t *testing.T) {
	require.Equal(t, http.SameSiteStrictMode, parseSameSite("strict"))
	require.Equal(t, http.SameSiteNoneMode, parseSameSite("NONE"))
	require.Equal(t, http.SameSiteLaxMode, parseSameSite("lax"))
	require.Equal(t, http.SameSiteLaxMode, parseSameSite("garbage"))
	require.Equal(t, http.SameSiteLaxMode, parseSameSite(""))
}

func TestEnvInt64RejectsNonPositive(t *testing.T) {
	t.Setenv("NOTEKEEP_AUTH_MAX_BODY_BYTES", "-5")
	cfg := LoadConfigFromEnv()
	require.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
}
