// Package cache holds shared caches used by the auth service.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultStampPrefix = "auth:stamp"

// StampCache keeps security stamp fingerprints in Redis so the access token
// stamp check does not hit the database on every request.
type StampCache struct {
	client *redis.Client
	prefix string
}

// NewStampCache wraps client. An empty prefix uses "auth:stamp".
func NewStampCache(client *redis.Client, keyPrefix string) *StampCache {
	prefix := strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = defaultStampPrefix
	}
	return &StampCache{client: client, prefix: prefix}
}

// NewClient parses a redis:// URL and checks the server answers.
func NewClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// Get reports ok=false on a miss.
func (c *StampCache) Get(ctx context.Context, accountID int64) (string, bool, error) {
	value, err := c.client.Get(ctx, c.key(accountID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get stamp: %w", err)
	}
	return value, true, nil
}

func (c *StampCache) Set(ctx context.Context, accountID int64, fingerprint string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive")
	}
	if err := c.client.Set(ctx, c.key(accountID), fingerprint, ttl).Err(); err != nil {
		return fmt.Errorf("redis set stamp: %w", err)
	}
	return nil
}

func (c *StampCache) Delete(ctx context.Context, accountID int64) error {
	if err := c.client.Del(ctx, c.key(accountID)).Err(); err != nil {
		return fmt.Errorf("redis delete stamp: %w", err)
	}
	return nil
}

// Ping is used by the readiness probe.
func (c *StampCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *StampCache) key(accountID int64) string {
	return c.prefix + ":" + strconv.FormatInt(accountID, 10)
}
