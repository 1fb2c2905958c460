package session

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store using PostgreSQL (notekeep.sessions).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed session store.
// The pool is owned by the caller.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Create inserts a new session row.
func (s *PostgresStore) Create(ctx context.Context, row Row) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notekeep.sessions (
			id, user_id, token_hash, created_at, expires_at, revoked_at, revocation_reason
		) VALUES ($1, $2, $3, $4, $5, NULL, NULL)
	`, row.ID, row.UserID, row.TokenHash, row.CreatedAt, row.ExpiresAt)
	return err
}

// GetByTokenHash loads a session row by token hash.
func (s *PostgresStore) GetByTokenHash(ctx context.Context, tokenHash string) (Row, error) {
	var row Row

	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, token_hash, created_at, expires_at, revoked_at
		FROM notekeep.sessions
		WHERE token_hash = $1
	`, tokenHash).Scan(
		&row.ID,
		&row.UserID,
		&row.TokenHash,
		&row.CreatedAt,
		&row.ExpiresAt,
		&row.RevokedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Row{}, ErrSessionNotActive
	}
	if err != nil {
		return Row{}, err
	}

	return row, nil
}

// RevokeByTokenHash revokes a single session (idempotent).
func (s *PostgresStore) RevokeByTokenHash(ctx context.Context, now time.Time, tokenHash string, reason string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE notekeep.sessions
		SET revoked_at = COALESCE(revoked_at, $2),
		    revocation_reason = COALESCE(revocation_reason, $3)
		WHERE token_hash = $1
	`, tokenHash, now, reason)
	return err
}

// RevokeAllForUser revokes all sessions for a user (idempotent).
func (s *PostgresStore) RevokeAllForUser(ctx context.Context, now time.Time, userID string, reason string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE notekeep.sessions
		SET revoked_at = COALESCE(revoked_at, $2),
		    revocation_reason = COALESCE(revocation_reason, $3)
		WHERE user_id = $1
	`, userID, now, reason)
	return err
}

// PurgeExpired deletes rows whose expiry passed before cutoff.
func (s *PostgresStore) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM notekeep.sessions
		WHERE expires_at <= $1
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
