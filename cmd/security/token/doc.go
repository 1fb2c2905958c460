// Package token provides token primitives for notekeep sessions.
//
// It is the single source of truth for session-token generation and hashing.
//
// Design goals:
// - Opaque, unguessable tokens: crypto/rand bytes, base64url encoded.
// - Only a hash of the token is ever persisted server-side.
// - Default dev/back-compat mode: SHA-256(token) when no HMAC key is configured.
// - Production-enforced mode: HMAC-SHA256(token, key) when policy requires it.
// - Stable 64-char hex output for storage and lookup.
//
// Environment:
// - NOTEKEEP_TOKEN_HMAC_KEY: when set, enables HMAC mode.
//
// Policy:
//   - If RequireTokenHMAC=true, callers MUST enforce a minimum key size (>= 32 bytes)
//     and MUST use HMAC (no SHA fallback).
package token
