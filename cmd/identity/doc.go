// Package identity implements notekeep's identity & credential foundation.
//
// It contains the user record model, security primitives (ULID, password
// hashing facade), and the credential-store boundary used by the HTTP layer.
//
// This package is intentionally dependency-light and security-first.
package identity
