package note

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketNotes = []byte("notes")

// BoltStore implements Store over an embedded bbolt file, keyed by user ID.
type BoltStore struct {
	db *bolt.DB
}

type boltNote struct {
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBoltStore constructs a bbolt-backed note store, creating its bucket.
func NewBoltStore(db *bolt.DB) (*BoltStore, error) {
	if db == nil {
		return nil, fmt.Errorf("note: nil bolt db")
	}
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketNotes)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

// Upsert creates or replaces the user's note.
func (s *BoltStore) Upsert(ctx context.Context, now time.Time, userID string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	buf, err := json.Marshal(boltNote{Body: text, UpdatedAt: now})
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketNotes).Put([]byte(userID), buf)
	})
}

// Get returns the user's note, or "" before the first write.
func (s *BoltStore) Get(ctx context.Context, userID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var body string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketNotes).Get([]byte(userID))
		if v == nil {
			return nil
		}
		var row boltNote
		if err := json.Unmarshal(v, &row); err != nil {
			return err
		}
		body = row.Body
		return nil
	})
	if err != nil {
		return "", err
	}
	return body, nil
}
