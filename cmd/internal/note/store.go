// Package note implements notekeep's per-user private note: at most one note
// per user, written with upsert semantics and readable only by its owner.
//
// Access control lives at the HTTP boundary: every operation is keyed by the
// identity bound to a validated session, never by anything in the request.
package note

import (
	"context"
	"time"
)

// Store abstracts persistence for notes.
//
// Writes are last-writer-wins; there are no merge semantics. Each operation
// is a single atomic store transaction.
type Store interface {
	// Upsert creates or replaces the note owned by userID.
	Upsert(ctx context.Context, now time.Time, userID string, text string) error

	// Get returns the note owned by userID, or "" if none was ever written.
	// An absent note is not an error.
	Get(ctx context.Context, userID string) (string, error)
}
