package pending

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedisStore connects to the Redis named by TEST_REDIS_ADDR, or skips.
func setupRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set; skipping Redis store tests")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("Failed to ping redis at %s: %v", addr, err)
	}
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := setupRedisStore(t)
	ctx := context.Background()

	email := "redis-roundtrip@x.com"
	t.Cleanup(func() { store.Delete(ctx, email) })

	reg := Registration{
		Email:     email,
		Code:      "007321",
		Profile:   []byte(`{"name":"R"}`),
		Attempts:  MaxAttempts,
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Put(ctx, reg))

	got, err := store.Get(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "007321", got.Code)
	assert.Equal(t, []byte(`{"name":"R"}`), got.Profile)
	assert.Equal(t, MaxAttempts, got.Attempts)
	assert.WithinDuration(t, reg.CreatedAt, got.CreatedAt, time.Second)
}

func TestRedisStoreDecrementAndDelete(t *testing.T) {
	store := setupRedisStore(t)
	ctx := context.Background()

	email := "redis-attempts@x.com"
	t.Cleanup(func() { store.Delete(ctx, email) })

	require.NoError(t, store.Put(ctx, Registration{Email: email, Code: "123456", Attempts: MaxAttempts}))

	left, err := store.DecrementAttempts(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, 2, left)

	require.NoError(t, store.Delete(ctx, email))

	got, err := store.Get(ctx, email)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStorePutOverwrites(t *testing.T) {
	store := setupRedisStore(t)
	ctx := context.Background()

	email := "redis-overwrite@x.com"
	t.Cleanup(func() { store.Delete(ctx, email) })

	require.NoError(t, store.Put(ctx, Registration{Email: email, Code: "111111", Attempts: 1}))
	require.NoError(t, store.Put(ctx, Registration{Email: email, Code: "222222", Attempts: MaxAttempts}))

	got, err := store.Get(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "222222", got.Code)
	assert.Equal(t, MaxAttempts, got.Attempts)
}
