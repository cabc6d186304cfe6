// Package redis owns the connection to the session and login-throttle
// backend. An unset REDIS_URL is not an error: callers fall back to the
// in-process stores.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"taxonline/internal/platform/config"
)

// Client embeds the go-redis client and adds the health probe /healthz uses.
type Client struct {
	*redis.Client
}

// New dials Redis with the configured pool bounds and verifies the
// connection before handing it out. A nil Client with a nil error means
// Redis is not configured.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{Client: client}, nil
}

// Health reports connection liveness.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
