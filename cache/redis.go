package cache

import (
	"context"
	"errors"
	"time"

	"github.com/ZaguanLabs/gotrans"
	"github.com/redis/go-redis/v9"
)

// hashCmdable is the subset of redis commands the cache needs. Both
// *redis.Client and *redis.Conn satisfy it.
type hashCmdable interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// RedisCache stores translations in redis hashes: one hash per language,
// keyed by word. The layout matches "HSET <lang> <word> <text>".
type RedisCache struct {
	client    *redis.Client
	cmd       hashCmdable
	keyPrefix string
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	URL         string        // Redis connection URL (e.g., "redis://127.0.0.1/")
	KeyPrefix   string        // Prefix for hash keys (default: none)
	DialTimeout time.Duration // Timeout for the startup ping (default: 5s)
}

// NewRedisCache connects to redis and verifies the connection with a ping.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewRedisCacheFromClient(client, cfg.KeyPrefix), nil
}

// NewRedisCacheFromClient creates a RedisCache from an existing Redis client.
func NewRedisCacheFromClient(client *redis.Client, keyPrefix string) *RedisCache {
	return &RedisCache{
		client:    client,
		cmd:       client,
		keyPrefix: keyPrefix,
	}
}

func (c *RedisCache) hashKey(lang string) string {
	return c.keyPrefix + lang
}

// Get reads field word of the language hash.
func (c *RedisCache) Get(ctx context.Context, lang, word string) (string, bool, error) {
	val, err := c.cmd.HGet(ctx, c.hashKey(lang), word).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &gotrans.CacheError{Op: "get", Message: "HGET failed", Cause: err}
	}
	return val, true, nil
}

// Set writes field word of the language hash.
func (c *RedisCache) Set(ctx context.Context, lang, word, value string) error {
	if err := c.cmd.HSet(ctx, c.hashKey(lang), word, value).Err(); err != nil {
		return &gotrans.CacheError{Op: "set", Message: "HSET failed", Cause: err}
	}
	return nil
}

// Session pins one pooled connection for the duration of a lookup. The
// connection is taken from the pool on first use and returned by release.
func (c *RedisCache) Session(ctx context.Context) (TranslationCache, func() error, error) {
	if c.client == nil {
		return nil, nil, &gotrans.CacheError{Op: "session", Message: "cache has no client"}
	}

	conn := c.client.Conn()
	session := &RedisCache{
		cmd:       conn,
		keyPrefix: c.keyPrefix,
	}
	return session, conn.Close, nil
}

// Ping tests the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return errors.New("cache has no client")
	}
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *RedisCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Verify RedisCache implements SessionCache
var _ SessionCache = (*RedisCache)(nil)
