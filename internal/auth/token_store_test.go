package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisTokenStore(client, ttl), mr
}

func TestTokenStoreSaveAndGet(t *testing.T) {
	store, mr := newTestStore(t, 240*time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "alice", "token-1"))

	token, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)

	// Keys are namespaced per username with the jwt prefix.
	assert.True(t, mr.Exists("jwt:alice"))
	ttl := mr.TTL("jwt:alice")
	assert.Equal(t, 240*time.Hour, ttl)
}

func TestTokenStoreGetMissing(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	token, err := store.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestTokenStoreOverwrite(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "alice", "token-1"))
	require.NoError(t, store.Save(ctx, "alice", "token-2"))

	token, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "token-2", token)
}

func TestTokenStoreDelete(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "alice", "token-1"))
	require.NoError(t, store.Delete(ctx, "alice"))
	assert.False(t, mr.Exists("jwt:alice"))

	token, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, token)

	// Deleting an absent entry is not an error.
	require.NoError(t, store.Delete(ctx, "alice"))
}

func TestTokenStoreEntryExpires(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "alice", "token-1"))
	mr.FastForward(2 * time.Minute)

	token, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, token)
}
