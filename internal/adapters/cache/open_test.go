package cache

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hazard-curve-service/internal/config"
)

func TestOpenBackends(t *testing.T) {
	redisSrv := miniredis.RunT(t)
	redisPort, err := strconv.Atoi(redisSrv.Port())
	require.NoError(t, err)

	tests := []struct {
		name string
		cfg  config.CacheConfig
		want any
	}{
		{
			name: "memory",
			cfg:  config.CacheConfig{Backend: config.BackendMemory},
			want: &MemoryCache{},
		},
		{
			name: "memcached",
			cfg:  config.CacheConfig{Backend: config.BackendMemcached, Host: "localhost", Port: 11211, Timeout: time.Second},
			want: &MemcachedCache{},
		},
		{
			name: "redis",
			cfg:  config.CacheConfig{Backend: config.BackendRedis, Host: redisSrv.Host(), Port: redisPort, Timeout: time.Second},
			want: &RedisCache{},
		},
		{
			name: "sqlite",
			cfg:  config.CacheConfig{Backend: config.BackendSqlite, SqlitePath: filepath.Join(t.TempDir(), "nested", "cache.db")},
			want: &SqliteCurveCache{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, closeFn, err := Open(context.Background(), tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, closeFn)
			t.Cleanup(func() { _ = closeFn() })

			assert.IsType(t, tt.want, c)
		})
	}
}

func TestOpenSqliteIsUsable(t *testing.T) {
	cfg := config.CacheConfig{Backend: config.BackendSqlite, SqlitePath: filepath.Join(t.TempDir(), "cache.db")}
	ctx := context.Background()

	c, closeFn, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, c.Set(ctx, "CURVE", "value"))
	v, found, err := c.Get(ctx, "CURVE")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "value", v)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, closeFn, err := Open(context.Background(), config.CacheConfig{Backend: "etcd"})
	assert.Error(t, err)
	assert.NotNil(t, closeFn)
}
