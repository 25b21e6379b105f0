package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fridge/internal/database"
	"github.com/pageza/fridge/internal/logger"
	"github.com/pageza/fridge/internal/testhelpers"
	"github.com/pageza/fridge/internal/types"
)

func exerciseKV(t *testing.T, kv KeyValue) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, TokenKey, "first"))
	require.NoError(t, kv.Set(ctx, TokenKey, "second"))
	v, err := kv.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "second", v)

	require.NoError(t, kv.Delete(ctx, TokenKey))
	require.NoError(t, kv.Delete(ctx, TokenKey))
	_, err = kv.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, ErrNotFound)

	store := NewStore(kv, logger.Discard())
	store.Save(ctx, "tok", types.User{ID: "u-1", Email: "a@b.c"})
	creds, ok := store.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "a@b.c", creds.User.Email)
	store.Clear(ctx)
	_, ok = store.Load(ctx)
	assert.False(t, ok)
}

func TestSQLKVSQLite(t *testing.T) {
	db, err := database.Open("sqlite://" + filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)

	kv, err := NewSQLKV(db)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	assert.Equal(t, "sqlite", db.Dialector.Name())
	exerciseKV(t, kv)
}

func TestSQLKVPostgres(t *testing.T) {
	db, err := database.Open(testhelpers.StartPostgres(t))
	require.NoError(t, err)
	assert.Equal(t, "postgres", db.Dialector.Name())

	kv, err := NewSQLKV(db)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	exerciseKV(t, kv)
}
