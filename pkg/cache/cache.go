package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cwmarketing/loyalty-go/pkg/config"
	"github.com/cwmarketing/loyalty-go/pkg/env"
	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace = "cw"
	imagePrefix  = "image"
	menuPrefix   = "menu"
)

// ErrMiss is returned when a key is absent from the cache.
var ErrMiss = errors.New("cache: miss")

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Client is a redis-backed shared cache. The zero value (or a nil
// pointer) is a valid cache that always misses, so callers never need
// to branch on whether caching is configured.
type Client struct {
	store cmdable
	raw   *redis.Client
	ttl   time.Duration
}

// New connects to redis and verifies connectivity. Returns (nil, nil)
// when the cache is unconfigured or disabled via CW_CACHE_DISABLED.
func New(ctx context.Context, cfg config.CacheConfig) (*Client, error) {
	if !cfg.Enabled() || env.GetBool("CW_CACHE_DISABLED", false) {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{store: raw, raw: raw, ttl: cfg.TTL}, nil
}

// Set stores raw bytes under the namespaced key with the default TTL.
func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	if c == nil || c.store == nil {
		return nil
	}
	return c.store.Set(ctx, key, value, c.ttl).Err()
}

// Get returns the bytes stored at key, or ErrMiss.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.store == nil {
		return nil, ErrMiss
	}
	val, err := c.store.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return val, err
}

// Del removes the provided keys.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	if c == nil || c.store == nil {
		return nil
	}
	return c.store.Del(ctx, keys...).Err()
}

// Ping verifies the connection. A nil cache is always healthy.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.store == nil {
		return nil
	}
	return c.store.Ping(ctx).Err()
}

// Close shuts down the underlying client if available.
func (c *Client) Close() error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

// ImageKey builds a namespaced key for cached image bytes.
func (c *Client) ImageKey(id string) string {
	return buildKey(imagePrefix, id)
}

// MenuKey builds a namespaced key for cached menu payloads.
func (c *Client) MenuKey(conceptID, terminalID string) string {
	return buildKey(menuPrefix, conceptID, terminalID)
}

func buildKey(parts ...string) string {
	clean := []string{keyNamespace}
	for _, part := range parts {
		if part == "" {
			continue
		}
		clean = append(clean, strings.TrimSpace(part))
	}
	return strings.Join(clean, ":")
}
