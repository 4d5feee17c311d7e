package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Save(ctx context.Context, tokenID, subject string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(tokenID), subject, ttl).Err()
}

func (s *redisSessionStore) Lookup(ctx context.Context, tokenID string) (string, error) {
	subject, err := s.client.Get(ctx, sessionKey(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return subject, err
}

func (s *redisSessionStore) Revoke(ctx context.Context, tokenID string) error {
	return s.client.Del(ctx, sessionKey(tokenID)).Err()
}
