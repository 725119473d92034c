package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupSQLite(t *testing.T, path string) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(context.Background(), path, zap.NewNop())
	require.NoError(t, err, "Failed to create sqlite storage")
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("PutIfAbsent and Get", func(t *testing.T) {
		store := setupSQLite(t, filepath.Join(t.TempDir(), "links.db"))

		require.NoError(t, store.PutIfAbsent(ctx, "abc123", "https://example.com"))

		targetURL, err := store.Get(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", targetURL)
	})

	t.Run("Existing slug is kept", func(t *testing.T) {
		store := setupSQLite(t, filepath.Join(t.TempDir(), "links.db"))

		require.NoError(t, store.PutIfAbsent(ctx, "abc123", "https://example.com"))

		err := store.PutIfAbsent(ctx, "abc123", "https://other.com")
		assert.ErrorIs(t, err, ErrSlugExists)

		targetURL, err := store.Get(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", targetURL)
	})

	t.Run("Missing slug", func(t *testing.T) {
		store := setupSQLite(t, ":memory:")

		_, err := store.Get(ctx, "nonexistent")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Mappings survive reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "links.db")

		first, err := NewSQLiteStorage(ctx, path, zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, first.PutIfAbsent(ctx, "keep01", "https://example.com/kept"))
		require.NoError(t, first.Close())

		second := setupSQLite(t, path)
		targetURL, err := second.Get(ctx, "keep01")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/kept", targetURL)
	})

	t.Run("Closed database", func(t *testing.T) {
		store, err := NewSQLiteStorage(ctx, ":memory:", zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, store.Close())

		_, err = store.Get(ctx, "abc123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}
