package kvstore

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/heritage-explorer/internal/config"
	"github.com/heritage-explorer/internal/repository/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	port := 6379
	if p, err := strconv.Atoi(os.Getenv("TEST_REDIS_PORT")); err == nil {
		port = p
	}
	host := os.Getenv("TEST_REDIS_HOST")
	if host == "" {
		host = "localhost"
	}

	r, err := cache.NewRedis(&config.RedisConfig{Enabled: true, Host: host, Port: port, DB: 15}, zap.NewNop())
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { r.Close() })

	store := NewRedisStore(r, zap.NewNop())
	t.Cleanup(func() {
		store.MultiRemove(context.Background(), "auth_token", "auth_user")
	})
	return store
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.MultiSet(ctx, map[string]string{
		"auth_token": "tok",
		"auth_user":  `{"id":5}`,
	}))

	got, err := store.MultiGet(ctx, "auth_token", "auth_user")
	require.NoError(t, err)
	assert.Equal(t, "tok", got["auth_token"])
	assert.Equal(t, `{"id":5}`, got["auth_user"])

	require.NoError(t, store.MultiRemove(ctx, "auth_token", "auth_user"))

	got, err = store.MultiGet(ctx, "auth_token", "auth_user")
	require.NoError(t, err)
	assert.Empty(t, got)
}
