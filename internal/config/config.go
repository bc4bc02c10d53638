// Package config reads the service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultUpstreamRetries = 3
	defaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	HTTPAddr        string
	Store           string
	DatabaseURL     string
	UpstreamURL     string
	UpstreamRetries int
	LogLevel        zapcore.Level
	ShutdownTimeout time.Duration
}

// Load reads SHOP_* variables through getenv, usually os.Getenv.
func Load(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := Config{
		HTTPAddr:        defaultHTTPAddr,
		Store:           StoreMemory,
		DatabaseURL:     getenv("SHOP_DATABASE_URL"),
		UpstreamURL:     getenv("SHOP_UPSTREAM_URL"),
		UpstreamRetries: defaultUpstreamRetries,
		LogLevel:        zapcore.InfoLevel,
		ShutdownTimeout: defaultShutdownTimeout,
	}

	if addr := getenv("SHOP_HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	}
	if store := getenv("SHOP_STORE"); store != "" {
		cfg.Store = store
	}

	if retries := getenv("SHOP_UPSTREAM_RETRIES"); retries != "" {
		n, err := strconv.Atoi(retries)
		if err != nil {
			return Config{}, fmt.Errorf("SHOP_UPSTREAM_RETRIES: %w", err)
		}
		cfg.UpstreamRetries = n
	}

	if level := getenv("SHOP_LOG_LEVEL"); level != "" {
		l, err := zapcore.ParseLevel(level)
		if err != nil {
			return Config{}, fmt.Errorf("SHOP_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = l
	}

	if timeout := getenv("SHOP_SHUTDOWN_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("SHOP_SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("SHOP_DATABASE_URL is required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("SHOP_STORE[%s] is not valid", c.Store))
	}

	if c.UpstreamRetries < 0 {
		errs = append(errs, fmt.Errorf("SHOP_UPSTREAM_RETRIES[%d] is negative", c.UpstreamRetries))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHOP_SHUTDOWN_TIMEOUT[%s] is not positive", c.ShutdownTimeout))
	}

	return errors.Join(errs...)
}

// Logger builds a production zap logger at the configured level.
func (c Config) Logger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(c.LogLevel)
	return zc.Build()
}

// PoolConfig parses DatabaseURL and applies the pool limits.
func (c Config) PoolConfig() (*pgxpool.Config, error) {
	const defaultMaxConnections = int32(8)
	const defaultMinConnections = int32(2)
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5
	const defaultHealthCheckPeriod = time.Minute
	const defaultConnectTimeout = time.Second * 5

	dbConfig, err := pgxpool.ParseConfig(c.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}

	dbConfig.MaxConns = defaultMaxConnections
	dbConfig.MinConns = defaultMinConnections
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig, nil
}
