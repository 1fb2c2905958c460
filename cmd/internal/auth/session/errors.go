package session

import "errors"

var (
	// ErrSessionNotActive is returned when a presented token is absent,
	// unknown, expired, or revoked. The cases are deliberately
	// indistinguishable to prevent token probing.
	ErrSessionNotActive = errors.New("session not active")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")
)
