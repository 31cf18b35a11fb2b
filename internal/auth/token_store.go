package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const tokenKeyPrefix = "jwt:"

// TokenStore caches issued tokens keyed by username so a user keeps a
// single live token for the validity window. Entries either expire
// naturally or are removed on logout.
type TokenStore interface {
	Save(ctx context.Context, username, token string) error
	Get(ctx context.Context, username string) (string, error)
	Delete(ctx context.Context, username string) error
}

type redisTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTokenStore builds a Redis-backed store. The TTL should match
// the token validity window.
func NewRedisTokenStore(client *redis.Client, ttl time.Duration) TokenStore {
	return &redisTokenStore{client: client, ttl: ttl}
}

func (s *redisTokenStore) Save(ctx context.Context, username, token string) error {
	return s.client.Set(ctx, tokenKeyPrefix+username, token, s.ttl).Err()
}

// Get returns the cached token, or empty string when none is stored.
func (s *redisTokenStore) Get(ctx context.Context, username string) (string, error) {
	token, err := s.client.Get(ctx, tokenKeyPrefix+username).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *redisTokenStore) Delete(ctx context.Context, username string) error {
	return s.client.Del(ctx, tokenKeyPrefix+username).Err()
}
