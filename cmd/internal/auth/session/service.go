package session

import (
	"context"
	"strings"
	"time"

	"notekeep/cmd/identity/ids"
	"notekeep/cmd/security/token"
)

// Service implements the high-level session operations for notekeep.
//
// It issues opaque tokens bound to a user with a fixed TTL, validates
// presented tokens against the authoritative store, and revokes them.
type Service struct {
	cfg   Config
	store Store
}

// Issued is the result of issuing a session.
// Token is shown to the client exactly once and never stored in plaintext.
type Issued struct {
	SessionID string
	Token     string
	ExpiresAt time.Time
}

// Identity is the result of validating a token.
type Identity struct {
	UserID    string
	SessionID string
}

// NewService constructs a Service with the provided configuration and store.
func NewService(cfg Config, store Store) *Service {
	return &Service{cfg: cfg, store: store}
}

// TTL exposes the configured session lifetime (used by the cookie transport).
func (s *Service) TTL() time.Duration { return s.cfg.TTL }

// PurgeInterval exposes the janitor interval; zero disables purging.
func (s *Service) PurgeInterval() time.Duration { return s.cfg.PurgeInterval }

// Issue creates a new session row for userID and returns the fresh token.
//
// Only the (HMAC-)SHA-256 hash of the token is persisted; the plain token is
// carried by the caller to the transport layer.
func (s *Service) Issue(ctx context.Context, now time.Time, userID string) (Issued, error) {
	plain, hashHex, err := newOpaqueSessionToken(s.cfg.TokenBytes)
	if err != nil {
		return Issued{}, err
	}

	sessionID, err := ids.NewULID(now)
	if err != nil {
		return Issued{}, err
	}

	expiresAt := now.Add(s.cfg.TTL)

	row := Row{
		ID:        sessionID,
		UserID:    userID,
		TokenHash: hashHex,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if err := s.store.Create(ctx, row); err != nil {
		return Issued{}, err
	}

	return Issued{
		SessionID: sessionID,
		Token:     plain,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate resolves a presented token to the identity bound to it.
//
// Absent, unknown, expired, and revoked tokens all fail with
// ErrSessionNotActive; the caller learns nothing about which. Expiry is
// checked lazily here, against the store state as of this call.
func (s *Service) Validate(ctx context.Context, tok string, now time.Time) (Identity, error) {
	tok = strings.TrimSpace(tok)
	// Basic sanity bounds to avoid pathological inputs.
	if tok == "" || len(tok) > 4096 {
		return Identity{}, ErrSessionNotActive
	}

	row, err := s.store.GetByTokenHash(ctx, token.HashSessionTokenHex(tok))
	if err != nil {
		return Identity{}, err
	}

	if row.RevokedAt != nil {
		return Identity{}, ErrSessionNotActive
	}
	if !row.ExpiresAt.After(now) {
		return Identity{}, ErrSessionNotActive
	}

	return Identity{UserID: row.UserID, SessionID: row.ID}, nil
}

// Revoke invalidates the session bound to tok, if any.
//
// Idempotent from the caller's perspective: revoking an unknown or
// already-revoked token is success.
func (s *Service) Revoke(ctx context.Context, now time.Time, tok string) error {
	tok = strings.TrimSpace(tok)
	if tok == "" || len(tok) > 4096 {
		return nil
	}
	return s.store.RevokeByTokenHash(ctx, now, token.HashSessionTokenHex(tok), "logout")
}

// RevokeAll revokes all sessions for a user (logout everywhere).
func (s *Service) RevokeAll(ctx context.Context, now time.Time, userID string) error {
	return s.store.RevokeAllForUser(ctx, now, userID, "logout_all")
}

// PurgeExpired reaps session rows whose expiry has passed. Storage hygiene
// only; validity decisions never depend on it.
func (s *Service) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.store.PurgeExpired(ctx, now)
}
