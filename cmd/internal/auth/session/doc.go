// Package session implements notekeep's session model.
//
// It issues, validates, and revokes opaque session tokens: random strings
// handed to the client once and stored server-side only as a hash
// (HMAC-SHA256 when NOTEKEEP_TOKEN_HMAC_KEY is set; otherwise SHA-256 for
// dev/back-compat). A session is valid from issuance until its fixed TTL
// elapses or it is revoked; expiry is checked lazily at validation time.
//
// Validation never distinguishes unknown, expired, and revoked tokens to the
// caller. Revocation is idempotent.
//
// Transport (cookies, HTTP) integration is intentionally out of scope here.
package session
