package identity

import (
	"context"
	"time"
)

// User is notekeep's canonical security principal.
type User struct {
	ID           string
	Username     string
	UsernameNorm string
	Email        string
	EmailNorm    string

	CreatedAt time.Time
}

// UserAuth pairs a user with its credential hash for login verification.
// IMPORTANT: PasswordHash must never leave the auth path (no logging, no API bodies).
type UserAuth struct {
	User         User
	PasswordHash string
}

// CreateUserInput describes a registration request.
// Username and Email are both required and unique (case-insensitive).
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Now      time.Time
}

// CreateUserResult returns the created user.
type CreateUserResult struct {
	User User
}

// Store is the credential persistence boundary.
//
// Implementations must make CreateUser atomic with respect to concurrent
// duplicate registrations: exactly one of two identical inserts wins, the
// other receives a ConflictError.
type Store interface {
	CreateUser(ctx context.Context, in CreateUserInput) (CreateUserResult, error)

	// GetUserByID loads a user by ID. Returns NotFoundError if absent.
	GetUserByID(ctx context.Context, id string) (User, error)

	// GetUserByUsername loads a user plus its credential hash by normalized
	// username. Returns NotFoundError if absent.
	GetUserByUsername(ctx context.Context, username string) (UserAuth, error)
}
