// ABOUTME: Redis cache implementation using go-redis client
// ABOUTME: Connects lazily so a missing server degrades reads instead of blocking startup

package redis

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"oddly-enough-api/pkg/config"
)

// ErrCacheMiss is returned by Get when the key is absent
var ErrCacheMiss = errors.New("key not found")

const (
	connectTimeout = 5 * time.Second
	scanBatch      = 200
)

// RedisCache implements the Cache interface using Redis
type RedisCache struct {
	opts *redis.Options

	once    sync.Once
	client  *redis.Client
	initErr error
}

// NewRedisCache builds a Redis cache from configuration. No connection is made
// until the first operation.
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &RedisCache{opts: opts}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, err
		}
		return opts, nil
	}
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}
	return &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}, nil
}

// conn returns the shared client, pinging it once on first use
func (c *RedisCache) conn(ctx context.Context) (*redis.Client, error) {
	c.once.Do(func() {
		client := redis.NewClient(c.opts)

		pingCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), connectTimeout)
		defer cancel()

		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			c.initErr = err
			return
		}
		c.client = client
	})
	if c.initErr != nil {
		return nil, c.initErr
	}
	return c.client, nil
}

// Ping verifies the server is reachable
func (c *RedisCache) Ping(ctx context.Context) error {
	client, err := c.conn(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx).Err()
}

// Get retrieves a value from Redis
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	client, err := c.conn(ctx)
	if err != nil {
		return nil, err
	}

	val, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	return val, nil
}

// Set stores a value in Redis with the given TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	client, err := c.conn(ctx)
	if err != nil {
		return err
	}
	// Redis SET with 0 TTL means no expiration
	return client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key from Redis
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	client, err := c.conn(ctx)
	if err != nil {
		return err
	}
	return client.Del(ctx, key).Err()
}

// DeletePrefix removes every key starting with prefix using SCAN so the
// server is never blocked by KEYS
func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	client, err := c.conn(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	iter := client.Scan(ctx, 0, escapeGlob(prefix)+"*", scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			n, err := client.Del(ctx, batch...).Result()
			if err != nil {
				return removed, err
			}
			removed += int(n)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}
	if len(batch) > 0 {
		n, err := client.Del(ctx, batch...).Result()
		if err != nil {
			return removed, err
		}
		removed += int(n)
	}
	return removed, nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// escapeGlob quotes the characters SCAN MATCH treats specially
func escapeGlob(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
