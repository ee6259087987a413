package sitekit

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/helixml/sitekit/domain/taxonomy"
	"github.com/helixml/sitekit/internal/config"
	"github.com/helixml/sitekit/internal/metrics"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	dbURL     string
	pool      config.PoolConfig
	registry  *taxonomy.Registry
	rulesFile string
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func newClientConfig() *clientConfig {
	return &clientConfig{pool: config.NewPoolConfig()}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite stores content in the SQLite file at path. ":memory:" opens a
// private in-memory database.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		if path != ":memory:" {
			path = filepath.Clean(path)
		}
		c.dbURL = "sqlite:///" + path
	}
}

// WithPostgres stores content in the PostgreSQL database at dsn.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.dbURL = dsn
		if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
			c.dbURL = "postgres://" + dsn
		}
	}
}

// WithDatabaseURL sets the database from a sqlite:/// or postgres:// URL.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.dbURL = url
	}
}

// WithPool sets the connection pool limits. Non-positive values keep the
// defaults.
func WithPool(maxOpen, maxIdle int, maxLifetime time.Duration) Option {
	return func(c *clientConfig) {
		c.pool = c.pool.WithMaxOpen(maxOpen).WithMaxIdle(maxIdle).WithMaxLifetime(maxLifetime)
	}
}

// WithConfig applies the database, pool and rule table settings of cfg.
func WithConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) {
		c.dbURL = cfg.DBURL()
		c.pool = cfg.Pool()
		c.rulesFile = cfg.RulesFile()
	}
}

// WithRegistry sets the taxonomy rule table used by the classifier.
func WithRegistry(r *taxonomy.Registry) Option {
	return func(c *clientConfig) {
		c.registry = r
	}
}

// WithRulesFile loads the taxonomy rule table from a YAML file instead of
// the embedded default.
func WithRulesFile(path string) Option {
	return func(c *clientConfig) {
		c.rulesFile = path
	}
}

// WithMetrics records operation counts on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *clientConfig) {
		c.metrics = m
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
