package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trip-planner-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisLookupCache stores raw lookup responses under
// "<prefix>:lookup:<kind>:<key>" with a fixed TTL.
type RedisLookupCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisLookupCache(client *redis.Client, prefix string, ttl time.Duration, log *zap.Logger) *RedisLookupCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisLookupCache{client: client, prefix: prefix, ttl: ttl, log: log}
}

// NewRedisClient connects and pings the server.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MinIdleConns: 2,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func (c *RedisLookupCache) key(kind, key string) string {
	parts := []string{"lookup", kind, key}
	if c.prefix != "" {
		parts = append([]string{c.prefix}, parts...)
	}
	return strings.Join(parts, ":")
}

func (c *RedisLookupCache) Get(ctx context.Context, kind, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, c.log, "lookup.cache.Get")(&err)

	if c.client == nil {
		return nil, false, errors.New("lookup cache: redis client is nil")
	}

	b, err := c.client.Get(ctx, c.key(kind, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get lookup cache %s: %w", kind, err)
	}
	return b, true, nil
}

func (c *RedisLookupCache) Put(ctx context.Context, kind, key string, value []byte) error {
	if c.client == nil {
		return errors.New("lookup cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("put lookup cache: empty key")
	}

	if err := c.client.Set(ctx, c.key(kind, key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("put lookup cache %s: %w", kind, err)
	}
	return nil
}
