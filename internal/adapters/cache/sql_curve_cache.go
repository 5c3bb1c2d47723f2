package cache

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"hazard-curve-service/internal/platform/obs"
	"hazard-curve-service/internal/ports"
)

var _ ports.Flusher = (*SQLCurveCache)(nil)

// SQLCurveCache is a Postgres-backed key-value cache over the hazard_curve_cache table.
type SQLCurveCache struct {
	DB *sql.DB
}

func NewSQLCurveCache(db *sql.DB) *SQLCurveCache {
	return &SQLCurveCache{DB: db}
}

// Store value under key, replacing any previous value.
func (s *SQLCurveCache) Set(ctx context.Context, key string, value string) (err error) {
	defer obs.Time(ctx, "cache.sql.Set")(&err)

	if s.DB == nil {
		return errors.New("curve cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return classify("postgres", "set", key, errors.New("key must not be empty"), nil)
	}

	q := `
	INSERT INTO hazard_curve_cache (cache_key, value)
	VALUES ($1, $2)
	ON CONFLICT (cache_key) DO UPDATE
	SET value = EXCLUDED.value;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, value); err != nil {
		return classify("postgres", "set", key, err, isSQLConnError)
	}

	return nil
}

// Fetch the value stored under key.
func (s *SQLCurveCache) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "cache.sql.Get")(&err)

	if s.DB == nil {
		return "", false, errors.New("curve cache: db is nil")
	}

	q := `
	SELECT value
	FROM hazard_curve_cache
	WHERE cache_key = $1;
	`

	var value string
	if err := s.DB.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, classify("postgres", "get", key, err, isSQLConnError)
	}

	return value, true, nil
}

// Delete every cached value.
func (s *SQLCurveCache) Flush(ctx context.Context) (err error) {
	defer obs.Time(ctx, "cache.sql.Flush")(&err)

	if s.DB == nil {
		return errors.New("curve cache: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM hazard_curve_cache;`); err != nil {
		return classify("postgres", "flush", "*", err, isSQLConnError)
	}
	return nil
}

func isSQLConnError(err error) bool {
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone)
}
