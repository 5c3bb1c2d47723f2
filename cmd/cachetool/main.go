package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"hazard-curve-service/internal/adapters/cache"
	"hazard-curve-service/internal/api/dto"
	"hazard-curve-service/internal/config"
	"hazard-curve-service/internal/domain"
	"hazard-curve-service/internal/platform/db"
	"hazard-curve-service/internal/ports"
	"hazard-curve-service/internal/services"
)

const usage = `usage: cachetool <command> [flags]

commands:
  init                       create the hazard_curve_cache table (postgres, sqlite)
  flush                      drop every value from the configured cache
  put -key K -file F         serialize the curve(s) in F (object or array) under K
  get -key K                 print the curve stored under K
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := run(context.Background(), cfg, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "init":
		return initSchema(cfg.Cache)
	case "flush":
		return withCache(ctx, cfg.Cache, func(c ports.Flusher) error {
			log.Println("Flushing cache...")
			if err := c.Flush(ctx); err != nil {
				return fmt.Errorf("flush: %w", err)
			}
			log.Println("Flush complete.")
			return nil
		})
	case "put":
		fs := flag.NewFlagSet("put", flag.ContinueOnError)
		key := fs.String("key", "", "cache key")
		file := fs.String("file", "", "JSON file holding one curve or an array of curves")
		if err := fs.Parse(args); err != nil {
			return err
		}
		curves, err := readCurves(*file)
		if err != nil {
			return err
		}
		return withCache(ctx, cfg.Cache, func(c ports.Flusher) error {
			s, err := services.NewHazardCurveSerializer(*key, c)
			if err != nil {
				return err
			}
			if err := s.SerializeAll(ctx, curves); err != nil {
				return fmt.Errorf("put: %w", err)
			}
			fmt.Fprintf(out, "stored %d curve(s) under %q\n", len(curves), s.Key())
			return nil
		})
	case "get":
		fs := flag.NewFlagSet("get", flag.ContinueOnError)
		key := fs.String("key", "", "cache key")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return withCache(ctx, cfg.Cache, func(c ports.Flusher) error {
			curve, found, err := services.LoadHazardCurve(ctx, c, *key)
			if err != nil {
				return fmt.Errorf("get: %w", err)
			}
			if !found {
				return fmt.Errorf("get: no curve under %q", *key)
			}
			text, err := curve.CanonicalEncoding()
			if err != nil {
				return fmt.Errorf("get: %w", err)
			}
			fmt.Fprintln(out, text)
			return nil
		})
	}

	return fmt.Errorf("unknown command %q\n%s", cmd, usage)
}

func withCache(ctx context.Context, cfg config.CacheConfig, fn func(ports.Flusher) error) error {
	c, closeCache, err := cache.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	return fn(c)
}

func initSchema(cfg config.CacheConfig) error {
	var driver, dsn string
	switch cfg.Backend {
	case config.BackendPostgres:
		driver, dsn = "pgx", cfg.DatabaseURL
	case config.BackendSqlite:
		driver, dsn = "sqlite", cfg.SqlitePath
	default:
		return fmt.Errorf("init: backend %q has no schema", cfg.Backend)
	}

	conn, err := db.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer conn.Close()

	log.Println("Initializing cache schema...")
	if err := cache.InitSchema(conn); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	log.Println("Schema ready.")

	return nil
}

// readCurves loads validated curves from a JSON file holding one curve object or an array of them.
func readCurves(path string) ([]domain.HazardCurve, error) {
	if path == "" {
		return nil, errors.New("put: -file is required")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("put: read %q: %w", path, err)
	}

	curves, err := dto.ParseHazardCurves(b)
	if err != nil {
		return nil, fmt.Errorf("put: parse %q: %w", path, err)
	}

	return curves, nil
}
