package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db", "spendlog.db")
	repo, err := NewRepository(path)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo, path
}

func TestRepositoryLoadSave(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	_, ok, err := repo.Load(ctx, "recurring")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Save(ctx, "recurring", []byte(`[{"frequency":"daily"}]`)))
	require.NoError(t, repo.Save(ctx, "recurring", []byte(`[]`)))

	v, ok, err := repo.Load(ctx, "recurring")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(v))

	ts, ok, err := repo.UpdatedAt(ctx, "recurring")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, ts.IsZero())

	_, ok, err = repo.UpdatedAt(ctx, "budgets")
	require.NoError(t, err)
	assert.False(t, ok, "unwritten key has no write time")
}

func TestMigrationsAreIdempotent(t *testing.T) {
	repo, path := newTestRepository(t)
	require.NoError(t, repo.Save(context.Background(), "expenses", []byte("[]")))

	require.NoError(t, repo.migrate())

	reopened, err := NewRepository(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Load(context.Background(), "expenses")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(v))
}
