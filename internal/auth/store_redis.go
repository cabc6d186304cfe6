package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"taxonline/pkg/platform/sentinel"
)

const sessionKeyPrefix = "session:"

var _ SessionStore = (*RedisSessionStore)(nil)

// RedisSessionStore is the production session store. Sessions are stored as
// JSON under session:<id> with a TTL matching the session expiry, so Redis
// evicts them without any sweeper.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, session Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return sentinel.ErrExpired
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Find(ctx context.Context, id string) (Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("find session: %w", err)
	}
	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
