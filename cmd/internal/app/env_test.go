package app

import (
	"testing"
	"time"
)

func TestEnvString(t *testing.T) {
	t.Setenv("NOTEKEEP_TEST_STR", "  value  ")
	if got := EnvString("NOTEKEEP_TEST_STR", "def"); got != "value" {
		t.Fatalf("EnvString=%q want value", got)
	}
	if got := EnvString("NOTEKEEP_TEST_STR_MISSING", "def"); got != "def" {
		t.Fatalf("EnvString=%q want def", got)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("NOTEKEEP_TEST_BOOL", "true")
	if !EnvBool("NOTEKEEP_TEST_BOOL", false) {
		t.Fatal("expected true")
	}
	t.Setenv("NOTEKEEP_TEST_BOOL", "not-a-bool")
	if !EnvBool("NOTEKEEP_TEST_BOOL", true) {
		t.Fatal("invalid value must fall back to default")
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("NOTEKEEP_TEST_INT", "42")
	if got := EnvInt("NOTEKEEP_TEST_INT", 7); got != 42 {
		t.Fatalf("EnvInt=%d want 42", got)
	}
	t.Setenv("NOTEKEEP_TEST_INT", "-1")
	if got := EnvInt("NOTEKEEP_TEST_INT", 7); got != 7 {
		t.Fatalf("non-positive must fall back: got %d", got)
	}
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("NOTEKEEP_TEST_DUR", "90s")
	if got := EnvDuration("NOTEKEEP_TEST_DUR", time.Minute); got != 90*time.Second {
		t.Fatalf("EnvDuration=%v want 90s", got)
	}
	t.Setenv("NOTEKEEP_TEST_DUR", "0s")
	if got := EnvDuration("NOTEKEEP_TEST_DUR", time.Minute); got != time.Minute {
		t.Fatalf("zero must fall back: got %v", got)
	}
}

func TestEnvStringSlice(t *testing.T) {
	t.Setenv("NOTEKEEP_TEST_SLICE", "a, b ,,c")
	got := EnvStringSlice("NOTEKEEP_TEST_SLICE")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("EnvStringSlice=%v", got)
	}
	t.Setenv("NOTEKEEP_TEST_SLICE", "")
	if got := EnvStringSlice("NOTEKEEP_TEST_SLICE"); got != nil {
		t.Fatalf("empty env must give nil, got %v", got)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"NOTEKEEP_HTTP_ADDR", "NOTEKEEP_LOG_LEVEL", "NOTEKEEP_LOG_FORMAT",
		"NOTEKEEP_DATABASE_URL", "NOTEKEEP_BOLT_PATH",
		"NOTEKEEP_READINESS_REQUIRE_DB", "NOTEKEEP_REQUIRE_TOKEN_HMAC",
		"NOTEKEEP_METRICS_ENABLED",
	} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	if cfg.HTTPAddr != "0.0.0.0:8080" {
		t.Fatalf("HTTPAddr=%q", cfg.HTTPAddr)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Fatalf("log defaults: %q %q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("DatabaseURL=%q want empty", cfg.DatabaseURL)
	}
	if cfg.BoltPath != "notekeep.db" {
		t.Fatalf("BoltPath=%q", cfg.BoltPath)
	}
	if cfg.RequireTokenHMAC {
		t.Fatal("RequireTokenHMAC must default to false")
	}
	if !cfg.MetricsEnabled {
		t.Fatal("MetricsEnabled must default to true")
	}
}
