package note

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func newTestBoltStore(t *testing.T) *BoltStore {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "notes.db"), 0o600, &bolt.Options{Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s, err := NewBoltStore(db)
	require.NoError(t, err)
	return s
}

func TestBoltStoreGetBeforeFirstWrite(t *testing.T) {
	s := newTestBoltStore(t)

	text, err := s.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.Empty(t, text)
}

func TestBoltStoreUpsertReplaces(t *testing.T) {
	s := newTestBoltStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.Upsert(ctx, now, "user-1", "first draft"))

	text, err := s.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "first draft", text)

	require.NoError(t, s.Upsert(ctx, now.Add(time.Minute), "user-1", "second draft"))

	text, err = s.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "second draft", text)
}

func TestBoltStoreEmptyNoteIsAValue(t *testing.T) {
	s := newTestBoltStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, time.Now().UTC(), "user-1", "something"))
	require.NoError(t, s.Upsert(ctx, time.Now().UTC(), "user-1", ""))

	text, err := s.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Empty(t, text)
}

func TestBoltStoreIsolatesUsers(t *testing.T) {
	s := newTestBoltStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.Upsert(ctx, now, "user-1", "mine"))
	require.NoError(t, s.Upsert(ctx, now, "user-2", "yours"))

	a, err := s.Get(ctx, "user-1")
	require.NoError(t, err)
	b, err := s.Get(ctx, "user-2")
	require.NoError(t, err)

	require.Equal(t, "mine", a)
	require.Equal(t, "yours", b)
}
