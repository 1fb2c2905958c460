package app

import (
	"strings"
	"testing"
)

func TestValidateSecurityConfigDisabled(t *testing.T) {
	t.Setenv("NOTEKEEP_TOKEN_HMAC_KEY", "")
	if err := ValidateSecurityConfig(Config{RequireTokenHMAC: false}); err != nil {
		t.Fatalf("policy off must pass: %v", err)
	}
}

func TestValidateSecurityConfigMissingKey(t *testing.T) {
	t.Setenv("NOTEKEEP_TOKEN_HMAC_KEY", "")
	err := ValidateSecurityConfig(Config{RequireTokenHMAC: true})
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Fatalf("expected missing-key error, got %v", err)
	}
}

func TestValidateSecurityConfigShortKey(t *testing.T) {
	t.Setenv("NOTEKEEP_TOKEN_HMAC_KEY", "too-short")
	err := ValidateSecurityConfig(Config{RequireTokenHMAC: true})
	if err == nil || !strings.Contains(err.Error(), "too short") {
		t.Fatalf("expected short-key error, got %v", err)
	}
}

func TestValidateSecurityConfigOK(t *testing.T) {
	t.Setenv("NOTEKEEP_TOKEN_HMAC_KEY", strings.Repeat("k", 32))
	if err := ValidateSecurityConfig(Config{RequireTokenHMAC: true}); err != nil {
		t.Fatalf("valid key must pass: %v", err)
	}
}
