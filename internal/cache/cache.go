package cache

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	CouponTTL     = 5 * time.Minute
	InfluencerTTL = 10 * time.Minute
)

// Cache is a JSON read-through layer over Redis. A nil *Cache is valid and
// behaves as a permanent miss, so callers never branch on whether Redis is
// configured.
type Cache struct {
	rdb    *redis.Client
	logger *log.Logger
}

// Connect dials Redis and pings it. An empty addr returns a nil cache.
func Connect(ctx context.Context, addr, password string, logger *log.Logger) (*Cache, error) {
	if addr == "" {
		return nil, nil
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	logger.Printf("connected to redis at %s", addr)
	return &Cache{rdb: rdb, logger: logger}, nil
}

// GetJSON unmarshals the cached value into dest and reports whether it hit.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Printf("cache: bad payload for %s: %v", key, err)
		return false
	}
	return true
}

// SetJSON stores v under key with a TTL. Failures are logged, never returned:
// the cache is advisory.
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if c == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Printf("cache: marshal %s: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Printf("cache: set %s: %v", key, err)
	}
}

// Invalidate drops keys after a write to the backing store.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Printf("cache: del %v: %v", keys, err)
	}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
