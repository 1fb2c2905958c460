package note

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store using PostgreSQL (notekeep.notes).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed note store.
// The pool is owned by the caller.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Upsert creates or replaces the user's note in a single statement, so
// concurrent writes from the same user resolve to last-writer-wins.
func (s *PostgresStore) Upsert(ctx context.Context, now time.Time, userID string, text string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notekeep.notes (user_id, body, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at
	`, userID, text, now)
	return err
}

// Get returns the user's note, or "" before the first write.
func (s *PostgresStore) Get(ctx context.Context, userID string) (string, error) {
	var body string
	err := s.pool.QueryRow(ctx, `
		SELECT body FROM notekeep.notes WHERE user_id = $1
	`, userID).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return body, nil
}
