package session

import (
	"context"
	"time"
)

// Row mirrors a stored session record.
//
// Rows are append-only except for the revocation fields: a token hash, once
// written, is never rebound to a different owner (tokens are not recycled).
type Row struct {
	ID        string
	UserID    string
	TokenHash string

	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Store abstracts persistence for session state.
//
// Each method is a single atomic store operation; no cross-operation
// transaction is required by the session model.
type Store interface {
	// Create inserts a new session row.
	Create(ctx context.Context, row Row) error

	// GetByTokenHash loads a session row by token hash.
	// Missing rows map to ErrSessionNotActive.
	GetByTokenHash(ctx context.Context, tokenHash string) (Row, error)

	// RevokeByTokenHash revokes the session bound to tokenHash, if any.
	// Idempotent: unknown and already-revoked hashes are not errors.
	RevokeByTokenHash(ctx context.Context, now time.Time, tokenHash string, reason string) error

	// RevokeAllForUser revokes every active session of a user (idempotent).
	RevokeAllForUser(ctx context.Context, now time.Time, userID string, reason string) error

	// PurgeExpired deletes rows whose expiry passed before cutoff and
	// returns how many were removed. Used by the janitor only; validation
	// never depends on it.
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
