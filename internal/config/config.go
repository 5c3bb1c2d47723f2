package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

// Prefix for every environment variable, e.g. HAZARD_CACHE_HOST.
const AppName = "HAZARD"

const (
	BackendMemcached = "memcached"
	BackendRedis     = "redis"
	BackendPostgres  = "postgres"
	BackendSqlite    = "sqlite"
	BackendMemory    = "memory"
)

// CacheConfig selects and addresses the key-value store curves are written to.
// Variables are read only under the HAZARD_CACHE_ prefix.
type CacheConfig struct {
	Backend     string        `default:"memcached"`
	Host        string        `default:"localhost"`
	Port        int           `default:"11211"`
	Password    string        `default:""`
	DB          int           `default:"0"`
	DatabaseURL string        `split_words:"true"`
	SqlitePath  string        `split_words:"true" default:"data/cache.db"`
	Timeout     time.Duration `default:"1s"`
}

// Addr returns "host:port".
func (c CacheConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type Config struct {
	Port     string `default:"8080"`
	LogLevel string `split_words:"true" default:"info"`
	Cache    CacheConfig
}

// Load reads .env when present, then fills Config from the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found (using environment variables)")
	}

	var cfg Config
	if err := envconfig.Process(AppName, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Cache.validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c CacheConfig) validate() error {
	switch c.Backend {
	case BackendMemcached, BackendRedis:
		if c.Host == "" {
			return fmt.Errorf("cache backend %q: host is required", c.Backend)
		}
		if c.Port <= 0 || c.Port > 65535 {
			return fmt.Errorf("cache backend %q: port %d out of range", c.Backend, c.Port)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("cache backend %q: database url is required", c.Backend)
		}
	case BackendSqlite:
		if c.SqlitePath == "" {
			return fmt.Errorf("cache backend %q: sqlite path is required", c.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Backend)
	}
	return nil
}
