package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hazard-curve-service/internal/platform/obs"
	"hazard-curve-service/internal/ports"
)

var _ ports.Flusher = (*RedisCache)(nil)

// RedisCache stores values as plain redis strings without expiry.
type RedisCache struct {
	client *redis.Client
}

// OpenRedisCache connects to addr and verifies the connection with PING.
// Client-side retries are disabled; failures surface to the caller.
func OpenRedisCache(ctx context.Context, addr, password string, db int, timeout time.Duration) (*RedisCache, error) {
	opts := &redis.Options{
		Addr:       addr,
		Password:   password,
		DB:         db,
		MaxRetries: -1,
	}
	if timeout > 0 {
		opts.DialTimeout = timeout
		opts.ReadTimeout = timeout
		opts.WriteTimeout = timeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w: %w", addr, ports.ErrConnection, err)
	}
	return &RedisCache{client: client}, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value string) (err error) {
	defer obs.Time(ctx, "cache.redis.Set")(&err)

	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return classify("redis", "set", key, err, nil)
	}
	return nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "cache.redis.Get")(&err)

	s, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, classify("redis", "get", key, err, nil)
	}
	return s, true, nil
}

// Flush empties the selected database (FLUSHDB).
func (r *RedisCache) Flush(ctx context.Context) (err error) {
	defer obs.Time(ctx, "cache.redis.Flush")(&err)

	if err := r.client.FlushDB(ctx).Err(); err != nil {
		return classify("redis", "flush", "*", err, nil)
	}
	return nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
