package cache

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"hazard-curve-service/internal/platform/obs"
	"hazard-curve-service/internal/ports"
)

var _ ports.Flusher = (*SqliteCurveCache)(nil)

// SQLite backed key-value cache over the hazard_curve_cache table.
// Suitable for single-process local runs.
type SqliteCurveCache struct {
	DB *sql.DB
}

func NewSqliteCurveCache(db *sql.DB) *SqliteCurveCache {
	return &SqliteCurveCache{DB: db}
}

// Store value under key, replacing any previous value.
func (s *SqliteCurveCache) Set(ctx context.Context, key string, value string) (err error) {
	defer obs.Time(ctx, "cache.sqlite.Set")(&err)

	if s.DB == nil {
		return errors.New("curve cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return classify("sqlite", "set", key, errors.New("key must not be empty"), nil)
	}

	q := `
	INSERT OR REPLACE INTO hazard_curve_cache (
		cache_key,
		value
	)
	VALUES (?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, key, value); err != nil {
		return classify("sqlite", "set", key, err, isSQLConnError)
	}

	return nil
}

// Fetch the value stored under key.
func (s *SqliteCurveCache) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "cache.sqlite.Get")(&err)

	if s.DB == nil {
		return "", false, errors.New("curve cache: db is nil")
	}

	q := `
	SELECT value
	FROM hazard_curve_cache
	WHERE cache_key = ?;
	`

	var value string
	if err := s.DB.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, classify("sqlite", "get", key, err, isSQLConnError)
	}

	return value, true, nil
}

// Delete every cached value.
func (s *SqliteCurveCache) Flush(ctx context.Context) (err error) {
	defer obs.Time(ctx, "cache.sqlite.Flush")(&err)

	if s.DB == nil {
		return errors.New("curve cache: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM hazard_curve_cache;`); err != nil {
		return classify("sqlite", "flush", "*", err, isSQLConnError)
	}
	return nil
}
