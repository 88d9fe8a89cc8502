package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-roster/internal/config"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()
	cfg := &config.Config{StoragePath: filepath.Join(t.TempDir(), "roster.db")}
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_GetMissingKey(t *testing.T) {
	s := newTestStore(t)

	value, ok, err := s.Get(context.Background(), "students")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSQLite_SetThenGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "students", `[{"id":"S1"}]`))
	value, ok, err := s.Get(ctx, "students")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"S1"}]`, value)

	t.Run("overwrite replaces the value", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "students", `[]`))
		value, ok, err := s.Get(ctx, "students")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[]`, value)
	})

	t.Run("keys are independent", func(t *testing.T) {
		_, ok, err := s.Get(ctx, "other")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.db")
	ctx := context.Background()

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "students", `["x"]`))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	value, ok, err := second.Get(ctx, "students")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["x"]`, value)
}

func TestSQLite_WaitsForLocks(t *testing.T) {
	s := newTestStore(t)

	var timeout int
	require.NoError(t, s.Db.QueryRow("PRAGMA busy_timeout").Scan(&timeout))
	assert.Equal(t, 5000, timeout)
}
