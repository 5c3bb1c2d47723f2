package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"hazard-curve-service/internal/config"
	"hazard-curve-service/internal/platform/db"
	"hazard-curve-service/internal/ports"
)

// Open builds the cache backend selected by cfg. The returned close func
// releases the backend's connections and is never nil.
func Open(ctx context.Context, cfg config.CacheConfig) (ports.Flusher, func() error, error) {
	noop := func() error { return nil }

	log.WithFields(log.Fields{"backend": cfg.Backend}).Info("Opening curve cache")

	switch cfg.Backend {
	case config.BackendMemcached:
		return NewMemcachedCache(cfg.Host, cfg.Port, cfg.Timeout), noop, nil

	case config.BackendRedis:
		c, err := OpenRedisCache(ctx, cfg.Addr(), cfg.Password, cfg.DB, cfg.Timeout)
		if err != nil {
			return nil, noop, fmt.Errorf("open cache: %w", err)
		}
		return c, c.Close, nil

	case config.BackendPostgres:
		conn, err := db.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("open cache: %w", err)
		}
		return NewSQLCurveCache(conn), conn.Close, nil

	case config.BackendSqlite:
		if dir := filepath.Dir(cfg.SqlitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, noop, fmt.Errorf("open cache: create sqlite dir %q: %w", dir, err)
			}
		}
		conn, err := db.Open("sqlite", cfg.SqlitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open cache: %w", err)
		}
		// Local runs get the schema on startup; Postgres is initialized by cachetool.
		if err := InitSchema(conn); err != nil {
			_ = conn.Close()
			return nil, noop, fmt.Errorf("open cache: %w", err)
		}
		return NewSqliteCurveCache(conn), conn.Close, nil

	case config.BackendMemory:
		return NewMemoryCache(), noop, nil
	}

	return nil, noop, fmt.Errorf("open cache: unknown backend %q", cfg.Backend)
}
