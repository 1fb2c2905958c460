package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketSessions = []byte("sessions")

// BoltStore implements Store over an embedded bbolt file.
// Rows are keyed by token hash; per-user operations scan the bucket, which is
// fine at single-node scale.
type BoltStore struct {
	db *bolt.DB
}

type boltSession struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	TokenHash string     `json:"token_hash"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	Reason    string     `json:"revocation_reason,omitempty"`
}

// NewBoltStore constructs a bbolt-backed session store, creating its bucket.
func NewBoltStore(db *bolt.DB) (*BoltStore, error) {
	if db == nil {
		return nil, fmt.Errorf("session: nil bolt db")
	}
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSessions)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

// Create inserts a new session row.
func (s *BoltStore) Create(ctx context.Context, row Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	buf, err := json.Marshal(boltSession{
		ID:        row.ID,
		UserID:    row.UserID,
		TokenHash: row.TokenHash,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	})
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		// Token hashes are 256-bit random digests; a collision would mean a
		// recycled token, which the model forbids.
		if b.Get([]byte(row.TokenHash)) != nil {
			return fmt.Errorf("session: token hash already present")
		}
		return b.Put([]byte(row.TokenHash), buf)
	})
}

// GetByTokenHash loads a session row by token hash.
func (s *BoltStore) GetByTokenHash(ctx context.Context, tokenHash string) (Row, error) {
	if err := ctx.Err(); err != nil {
		return Row{}, err
	}

	var row boltSession
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketSessions).Get([]byte(tokenHash))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &row)
	})
	if err != nil {
		return Row{}, err
	}
	if !found {
		return Row{}, ErrSessionNotActive
	}

	return toRow(row), nil
}

// RevokeByTokenHash revokes a single session (idempotent).
func (s *BoltStore) RevokeByTokenHash(ctx context.Context, now time.Time, tokenHash string, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		v := b.Get([]byte(tokenHash))
		if v == nil {
			return nil
		}
		var row boltSession
		if err := json.Unmarshal(v, &row); err != nil {
			return err
		}
		if row.RevokedAt != nil {
			return nil
		}
		row.RevokedAt = &now
		row.Reason = reason
		buf, err := json.Marshal(row)
		if err != nil {
			return err
		}
		return b.Put([]byte(tokenHash), buf)
	})
}

// RevokeAllForUser revokes all sessions for a user (idempotent).
func (s *BoltStore) RevokeAllForUser(ctx context.Context, now time.Time, userID string, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var row boltSession
			if err := json.Unmarshal(v, &row); err != nil {
				return err
			}
			if row.UserID != userID || row.RevokedAt != nil {
				continue
			}
			row.RevokedAt = &now
			row.Reason = reason
			buf, err := json.Marshal(row)
			if err != nil {
				return err
			}
			if err := b.Put(k, buf); err != nil {
				return err
			}
		}
		return nil
	})
}

// PurgeExpired deletes rows whose expiry passed before cutoff.
func (s *BoltStore) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var purged int64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		c := b.Cursor()
		var stale [][]byte
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var row boltSession
			if err := json.Unmarshal(v, &row); err != nil {
				return err
			}
			if !row.ExpiresAt.After(cutoff) {
				stale = append(stale, append([]byte(nil), k...))
			}
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
			purged++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return purged, nil
}

func toRow(row boltSession) Row {
	return Row{
		ID:        row.ID,
		UserID:    row.UserID,
		TokenHash: row.TokenHash,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
		RevokedAt: row.RevokedAt,
	}
}
