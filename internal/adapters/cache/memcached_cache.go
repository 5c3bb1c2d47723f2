package cache

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"hazard-curve-service/internal/platform/obs"
	"hazard-curve-service/internal/ports"
)

var _ ports.Flusher = (*MemcachedCache)(nil)

// MemcachedCache stores values in a memcached server addressed by host and port.
// Items never expire; a later Set under the same key replaces the value.
type MemcachedCache struct {
	client *memcache.Client
	addr   string
}

func NewMemcachedCache(host string, port int, timeout time.Duration) *MemcachedCache {
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	client := memcache.New(addr)
	if timeout > 0 {
		client.Timeout = timeout
	}
	// One connection is enough for sequential writes.
	client.MaxIdleConns = 1

	return &MemcachedCache{client: client, addr: addr}
}

func (m *MemcachedCache) Set(ctx context.Context, key string, value string) (err error) {
	defer obs.Time(ctx, "cache.memcached.Set")(&err)

	if err := ctx.Err(); err != nil {
		return classify(m.backend(), "set", key, err, nil)
	}

	if err := m.client.Set(&memcache.Item{Key: key, Value: []byte(value)}); err != nil {
		return classify(m.backend(), "set", key, err, isMemcachedConnError)
	}
	return nil
}

func (m *MemcachedCache) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "cache.memcached.Get")(&err)

	if err := ctx.Err(); err != nil {
		return "", false, classify(m.backend(), "get", key, err, nil)
	}

	item, err := m.client.Get(key)
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return "", false, nil
		}
		return "", false, classify(m.backend(), "get", key, err, isMemcachedConnError)
	}
	return string(item.Value), true, nil
}

// Flush invalidates every item on the server (flush_all).
func (m *MemcachedCache) Flush(ctx context.Context) (err error) {
	defer obs.Time(ctx, "cache.memcached.Flush")(&err)

	if err := m.client.FlushAll(); err != nil {
		return classify(m.backend(), "flush", "*", err, isMemcachedConnError)
	}
	return nil
}

// backend names the server in wrapped errors, e.g. "memcached localhost:11211".
func (m *MemcachedCache) backend() string {
	return "memcached " + m.addr
}

func isMemcachedConnError(err error) bool {
	var timeout *memcache.ConnectTimeoutError
	return errors.Is(err, memcache.ErrNoServers) || errors.As(err, &timeout)
}
