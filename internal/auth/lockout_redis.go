package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const lockoutKeyPrefix = "lockout:"

var _ LockoutStore = (*RedisLockoutStore)(nil)

// RedisLockoutStore is the production failure counter. Each key is an INCR
// counter whose TTL is the lockout window, so Redis expires stale counters
// without any sweeper.
type RedisLockoutStore struct {
	client *redis.Client
}

func NewRedisLockoutStore(client *redis.Client) *RedisLockoutStore {
	return &RedisLockoutStore{client: client}
}

func (s *RedisLockoutStore) RecordFailure(ctx context.Context, key string, window time.Duration) (int, error) {
	k := lockoutKeyPrefix + key
	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("record failure: %w", err)
	}
	// The first failure opens the window.
	if count == 1 {
		if err := s.client.Expire(ctx, k, window).Err(); err != nil {
			return 0, fmt.Errorf("set lockout window: %w", err)
		}
	}
	return int(count), nil
}

func (s *RedisLockoutStore) Failures(ctx context.Context, key string) (int, error) {
	count, err := s.client.Get(ctx, lockoutKeyPrefix+key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get failures: %w", err)
	}
	return count, nil
}

func (s *RedisLockoutStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, lockoutKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("clear failures: %w", err)
	}
	return nil
}
