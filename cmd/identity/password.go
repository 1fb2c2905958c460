package identity

import (
	"notekeep/cmd/security/password"
)

// Password hashing facade.
//
// identity delegates to cmd/security/password as the single source of truth
// for Argon2id parameters and password policy. The baseline policy only
// rejects empty passwords; deployments opt into a stricter floor via
// NOTEKEEP_PASSWORD_MIN_LEN.

func passwordConfig() (password.Config, error) {
	cfg, err := password.FromEnv()
	if err != nil {
		return password.Config{}, err
	}
	if cfg.Policy.MinLength < 1 {
		cfg.Policy.MinLength = 1
	}
	if cfg.Policy.MaxLength <= 0 {
		cfg.Policy.MaxLength = 256
	}
	return cfg, nil
}

// HashPassword returns a PHC-style Argon2id hash string.
// The plaintext never escapes this call.
func HashPassword(plain string) (string, error) {
	cfg, err := passwordConfig()
	if err != nil {
		return "", err
	}
	return cfg.Hash(plain)
}

// VerifyPassword checks a password against a PHC Argon2id hash using a
// constant-time comparison. Malformed hashes verify as false with an error.
func VerifyPassword(plain string, encodedPHC string) (bool, error) {
	cfg, err := passwordConfig()
	if err != nil {
		return false, err
	}
	return cfg.Verify(encodedPHC, plain)
}
