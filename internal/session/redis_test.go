package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fridge/internal/database"
	"github.com/pageza/fridge/internal/testhelpers"
)

func TestRedisKV(t *testing.T) {
	cfg := testhelpers.StartRedis(t)
	ctx := context.Background()

	client, err := database.NewRedisClient(ctx, cfg)
	require.NoError(t, err)

	kv := NewRedisKV(client, "test:session:", time.Minute)
	t.Cleanup(func() { kv.Close() })

	exerciseKV(t, kv)

	require.NoError(t, kv.Set(ctx, TokenKey, "tok"))
	ttl, err := client.TTL(ctx, "test:session:"+TokenKey).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
