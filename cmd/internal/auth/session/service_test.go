package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"
)

func newTestService(t *testing.T, cfg Config) *Service {
	t.Helper()

	db, err := bolt.Open(filepath.Join(t.TempDir(), "sessions.db"), 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		t.Fatalf("bolt.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewBoltStore(db)
	if err != nil {
		t.Fatalf("NewBoltStore: %v", err)
	}
	return NewService(cfg, store)
}

func TestIssueAndValidate(t *testing.T) {
	svc := newTestService(t, DefaultConfig())
	ctx := context.Background()
	now := time.Now().UTC()

	issued, err := svc.Issue(ctx, now, "01USER")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if issued.Token == "" || issued.SessionID == "" {
		t.Fatalf("missing token or session id")
	}
	if !issued.ExpiresAt.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("ExpiresAt=%v want now+24h", issued.ExpiresAt)
	}

	id, err := svc.Validate(ctx, issued.Token, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if id.UserID != "01USER" || id.SessionID != issued.SessionID {
		t.Fatalf("unexpected identity %+v", id)
	}
}

func TestValidate_UniformFailures(t *testing.T) {
	svc := newTestService(t, DefaultConfig())
	ctx := context.Background()
	now := time.Now().UTC()

	issued, err := svc.Issue(ctx, now, "01USER")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Unknown, expired, revoked, and empty tokens must all fail with the
	// same sentinel.
	cases := []struct {
		name string
		tok  string
		at   time.Time
		prep func()
	}{
		{name: "empty", tok: "", at: now},
		{name: "unknown", tok: "definitely-not-a-token", at: now},
		{name: "expired", tok: issued.Token, at: now.Add(25 * time.Hour)},
		{name: "revoked", tok: issued.Token, at: now, prep: func() {
			if err := svc.Revoke(ctx, now, issued.Token); err != nil {
				t.Fatalf("Revoke: %v", err)
			}
		}},
	}
	for _, tc := range cases {
		if tc.prep != nil {
			tc.prep()
		}
		if _, err := svc.Validate(ctx, tc.tok, tc.at); !errors.Is(err, ErrSessionNotActive) {
			t.Fatalf("%s: expected ErrSessionNotActive, got %v", tc.name, err)
		}
	}
}

func TestValidate_AtExpiryBoundary(t *testing.T) {
	svc := newTestService(t, DefaultConfig())
	ctx := context.Background()
	now := time.Now().UTC()

	issued, err := svc.Issue(ctx, now, "01USER")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Strictly-before expiry is valid; at expiry is not.
	if _, err := svc.Validate(ctx, issued.Token, issued.ExpiresAt.Add(-time.Second)); err != nil {
		t.Fatalf("Validate before expiry: %v", err)
	}
	if _, err := svc.Validate(ctx, issued.Token, issued.ExpiresAt); !errors.Is(err, ErrSessionNotActive) {
		t.Fatalf("expected ErrSessionNotActive at expiry, got %v", err)
	}
}

func TestRevoke_Idempotent(t *testing.T) {
	svc := newTestService(t, DefaultConfig())
	ctx := context.Background()
	now := time.Now().UTC()

	issued, err := svc.Issue(ctx, now, "01USER")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if err := svc.Revoke(ctx, now, issued.Token); err != nil {
		t.Fatalf("first Revoke: %v", err)
	}
	if err := svc.Revoke(ctx, now, issued.Token); err != nil {
		t.Fatalf("second Revoke must succeed: %v", err)
	}
	if err := svc.Revoke(ctx, now, "never-issued"); err != nil {
		t.Fatalf("Revoke of never-issued token must succeed: %v", err)
	}
}

func TestMultipleConcurrentSessionsPerUser(t *testing.T) {
	svc := newTestService(t, DefaultConfig())
	ctx := context.Background()
	now := time.Now().UTC()

	a, err := svc.Issue(ctx, now, "01USER")
	if err != nil {
		t.Fatalf("Issue a: %v", err)
	}
	b, err := svc.Issue(ctx, now, "01USER")
	if err != nil {
		t.Fatalf("Issue b: %v", err)
	}
	if a.Token == b.Token {
		t.Fatalf("tokens must be distinct")
	}

	// Revoking one session must not touch the other.
	if err := svc.Revoke(ctx, now, a.Token); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if _, err := svc.Validate(ctx, b.Token, now); err != nil {
		t.Fatalf("sibling session must stay valid: %v", err)
	}
}

func TestRevokeAll(t *testing.T) {
	svc := newTestService(t, DefaultConfig())
	ctx := context.Background()
	now := time.Now().UTC()

	a, _ := svc.Issue(ctx, now, "01USER")
	b, _ := svc.Issue(ctx, now, "01USER")
	other, _ := svc.Issue(ctx, now, "01OTHER")

	if err := svc.RevokeAll(ctx, now, "01USER"); err != nil {
		t.Fatalf("RevokeAll: %v", err)
	}

	for _, tok := range []string{a.Token, b.Token} {
		if _, err := svc.Validate(ctx, tok, now); !errors.Is(err, ErrSessionNotActive) {
			t.Fatalf("expected revoked, got %v", err)
		}
	}
	if _, err := svc.Validate(ctx, other.Token, now); err != nil {
		t.Fatalf("other user's session must survive: %v", err)
	}
}

func TestPurgeExpired(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TTL = time.Minute
	svc := newTestService(t, cfg)
	ctx := context.Background()
	now := time.Now().UTC()

	stale, _ := svc.Issue(ctx, now, "01USER")
	fresh, _ := svc.Issue(ctx, now.Add(time.Hour), "01USER")

	n, err := svc.PurgeExpired(ctx, now.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("PurgeExpired: %v", err)
	}
	if n != 1 {
		t.Fatalf("purged %d rows, want 1", n)
	}

	if _, err := svc.Validate(ctx, stale.Token, now); !errors.Is(err, ErrSessionNotActive) {
		t.Fatalf("purged token must not validate, got %v", err)
	}
	if _, err := svc.Validate(ctx, fresh.Token, now.Add(time.Hour+30*time.Second)); err != nil {
		t.Fatalf("fresh session must survive purge: %v", err)
	}
}
