package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "newsly.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCurrentWithoutLogin(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Current(t.Context())
	require.ErrorIs(t, err, ErrNoSession)
}

func TestSaveAndCurrent(t *testing.T) {
	store := openTestStore(t)

	loginTime := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(t.Context(), Session{Username: "admin", LoginTime: loginTime}))

	sess, err := store.Current(t.Context())
	require.NoError(t, err)
	require.Equal(t, "admin", sess.Username)
	require.True(t, sess.LoginTime.Equal(loginTime))
}

func TestSaveReplacesPreviousSession(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Save(t.Context(), Session{Username: "admin"}))
	second := time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC)
	require.NoError(t, store.Save(t.Context(), Session{Username: "admin", LoginTime: second}))

	sess, err := store.Current(t.Context())
	require.NoError(t, err)
	require.True(t, sess.LoginTime.Equal(second), "the newer login wins")
}

func TestSaveFillsZeroLoginTime(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Save(t.Context(), Session{Username: "admin"}))
	sess, err := store.Current(t.Context())
	require.NoError(t, err)
	require.False(t, sess.LoginTime.IsZero())
}

func TestClear(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Save(t.Context(), Session{Username: "admin"}))
	require.NoError(t, store.Clear(t.Context()))

	_, err := store.Current(t.Context())
	require.ErrorIs(t, err, ErrNoSession)

	// clearing an already empty store is fine
	require.NoError(t, store.Clear(t.Context()))
}

func TestSessionSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newsly.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(t.Context(), Session{Username: "admin"}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	sess, err := reopened.Current(t.Context())
	require.NoError(t, err)
	require.Equal(t, "admin", sess.Username)
}
