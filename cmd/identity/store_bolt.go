package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bolt bucket layout. Index buckets map normalized names to user IDs so that
// uniqueness checks and inserts happen inside a single write transaction.
var (
	bucketUsers       = []byte("users")
	bucketUsernameIdx = []byte("users_by_username")
	bucketEmailIdx    = []byte("users_by_email")
)

// BoltStore implements identity persistence over an embedded bbolt file.
// It backs single-node deployments and tests; Postgres is the primary backend.
type BoltStore struct {
	db *bolt.DB
}

// boltUser is the stored representation. PasswordHash stays server-side only.
type boltUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	UsernameNorm string    `json:"username_norm"`
	Email        string    `json:"email"`
	EmailNorm    string    `json:"email_norm"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewBoltStore constructs a bbolt-backed identity store, creating buckets as needed.
func NewBoltStore(db *bolt.DB) (*BoltStore, error) {
	if db == nil {
		return nil, fmt.Errorf("identity: nil bolt db")
	}
	err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketUsers, bucketUsernameIdx, bucketEmailIdx} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

// CreateUser inserts a new user. The uniqueness check and the insert run in
// one write transaction, so only one of two concurrent duplicates wins.
func (s *BoltStore) CreateUser(ctx context.Context, in CreateUserInput) (CreateUserResult, error) {
	const op = "identity.CreateUser"

	if err := ctx.Err(); err != nil {
		return CreateUserResult{}, err
	}

	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if username == "" {
		return CreateUserResult{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "username is required"}
	}
	if email == "" {
		return CreateUserResult{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "email is required"}
	}
	if strings.TrimSpace(in.Password) == "" {
		return CreateUserResult{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "password is required"}
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	// Hash outside the write transaction: argon2 is deliberately slow and
	// bolt serializes writers.
	pwHash, err := HashPassword(in.Password)
	if err != nil {
		return CreateUserResult{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: err.Error()}
	}

	userID, err := NewULID(now)
	if err != nil {
		return CreateUserResult{}, err
	}

	row := boltUser{
		ID:           userID,
		Username:     username,
		UsernameNorm: NormalizeUsername(username),
		Email:        email,
		EmailNorm:    NormalizeEmail(email),
		PasswordHash: pwHash,
		CreatedAt:    now,
	}

	buf, err := json.Marshal(row)
	if err != nil {
		return CreateUserResult{}, err
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		unameIdx := tx.Bucket(bucketUsernameIdx)
		emailIdx := tx.Bucket(bucketEmailIdx)
		users := tx.Bucket(bucketUsers)

		if unameIdx.Get([]byte(row.UsernameNorm)) != nil {
			return ConflictError{Op: op, Field: "username"}
		}
		if emailIdx.Get([]byte(row.EmailNorm)) != nil {
			return ConflictError{Op: op, Field: "email"}
		}

		if err := users.Put([]byte(row.ID), buf); err != nil {
			return err
		}
		if err := unameIdx.Put([]byte(row.UsernameNorm), []byte(row.ID)); err != nil {
			return err
		}
		return emailIdx.Put([]byte(row.EmailNorm), []byte(row.ID))
	})
	if err != nil {
		return CreateUserResult{}, err
	}

	return CreateUserResult{User: toUser(row)}, nil
}

// GetUserByID loads a user by primary key.
func (s *BoltStore) GetUserByID(ctx context.Context, id string) (User, error) {
	const op = "identity.GetUserByID"

	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	var row boltUser
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketUsers).Get([]byte(id))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &row)
	})
	if err != nil {
		return User{}, err
	}
	if !found {
		return User{}, NotFoundError{Op: op, Resource: "user"}
	}

	return toUser(row), nil
}

// GetUserByUsername loads a user plus credential hash by normalized username.
func (s *BoltStore) GetUserByUsername(ctx context.Context, username string) (UserAuth, error) {
	const op = "identity.GetUserByUsername"

	if err := ctx.Err(); err != nil {
		return UserAuth{}, err
	}

	norm := NormalizeUsername(username)

	var row boltUser
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		id := tx.Bucket(bucketUsernameIdx).Get([]byte(norm))
		if id == nil {
			return nil
		}
		v := tx.Bucket(bucketUsers).Get(id)
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &row)
	})
	if err != nil {
		return UserAuth{}, err
	}
	if !found {
		return UserAuth{}, NotFoundError{Op: op, Resource: "user"}
	}

	return UserAuth{User: toUser(row), PasswordHash: row.PasswordHash}, nil
}

func toUser(row boltUser) User {
	return User{
		ID:           row.ID,
		Username:     row.Username,
		UsernameNorm: row.UsernameNorm,
		Email:        row.Email,
		EmailNorm:    row.EmailNorm,
		CreatedAt:    row.CreatedAt,
	}
}
