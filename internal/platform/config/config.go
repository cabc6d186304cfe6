package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures everything the server needs from the environment so main
// stays lean.
type Config struct {
	Addr        string
	DatabaseURL string
	Redis       RedisConfig

	SessionTTL    time.Duration
	SessionCookie string

	JWTSigningKey string
	TokenTTL      time.Duration
}

// RedisConfig holds connection settings for the session store. An empty URL
// means Redis is not configured and the in-memory session store is used.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables, applying development
// defaults for anything unset.
func FromEnv() Config {
	cfg := Config{
		Addr:          envOr("TAXONLINE_ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionTTL:    durationOr("SESSION_TTL", 30*time.Minute),
		SessionCookie: envOr("SESSION_COOKIE", "taxonline_session"),
		JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		TokenTTL:      durationOr("API_TOKEN_TTL", time.Hour),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: intOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
