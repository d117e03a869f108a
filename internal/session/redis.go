// Package session stores issued access tokens and a blacklist of revoked
// ones in Redis. A token is authenticated iff it is present in the session
// keyspace and absent from the blacklist; both sides expire via TTL.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionPrefix   = "session:"
	blacklistPrefix = "blacklist:"
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Insert records token as an active session for userID. The TTL matches the
// token's own lifetime so the entry disappears when the JWT expires.
func (s *RedisStore) Insert(ctx context.Context, token, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", ttl)
	}
	if err := s.client.Set(ctx, sessionPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *RedisStore) Exists(ctx context.Context, token string) (bool, error) {
	_, err := s.client.Get(ctx, sessionPrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("get session: %w", err)
	}
	return true, nil
}

func (s *RedisStore) Remove(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionPrefix+token).Err(); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Blacklist marks token as revoked. The TTL should be the token's remaining
// JWT lifetime; once the signature itself has expired the entry is useless.
func (s *RedisStore) Blacklist(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if err := s.client.Set(ctx, blacklistPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (s *RedisStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	_, err := s.client.Get(ctx, blacklistPrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("get blacklist entry: %w", err)
	}
	return true, nil
}
