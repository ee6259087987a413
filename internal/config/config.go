// Package config provides application configuration.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultLogLevel           = "INFO"
	DefaultDBFile             = "sitekit.db"
	DefaultDBMaxOpenConns     = 1
	DefaultDBMaxIdleConns     = 1
	DefaultDBConnMaxLifetime  = 30 * time.Minute
	defaultDataDirName        = ".sitekit"
	sqliteURLPrefix           = "sqlite:///"
	maskedPostgresDescription = "postgres://***@***"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// PoolConfig holds database connection pool limits.
type PoolConfig struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
}

// NewPoolConfig creates a PoolConfig with defaults. SQLite serialises
// writers, so a single connection is the default.
func NewPoolConfig() PoolConfig {
	return PoolConfig{
		maxOpen:     DefaultDBMaxOpenConns,
		maxIdle:     DefaultDBMaxIdleConns,
		maxLifetime: DefaultDBConnMaxLifetime,
	}
}

// MaxOpen returns the maximum number of open connections.
func (p PoolConfig) MaxOpen() int { return p.maxOpen }

// MaxIdle returns the maximum number of idle connections.
func (p PoolConfig) MaxIdle() int { return p.maxIdle }

// MaxLifetime returns the maximum connection lifetime.
func (p PoolConfig) MaxLifetime() time.Duration { return p.maxLifetime }

// WithMaxOpen returns a copy with the given open-connection limit.
func (p PoolConfig) WithMaxOpen(n int) PoolConfig {
	if n > 0 {
		p.maxOpen = n
	}
	return p
}

// WithMaxIdle returns a copy with the given idle-connection limit.
func (p PoolConfig) WithMaxIdle(n int) PoolConfig {
	if n >= 0 {
		p.maxIdle = n
	}
	return p
}

// WithMaxLifetime returns a copy with the given connection lifetime.
func (p PoolConfig) WithMaxLifetime(d time.Duration) PoolConfig {
	if d > 0 {
		p.maxLifetime = d
	}
	return p
}

// AppConfig holds the immutable application configuration.
type AppConfig struct {
	dataDir         string
	dbURL           string
	pool            PoolConfig
	logLevel        string
	logFormat       LogFormat
	rulesFile       string
	metricsTextfile string
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDataDirName
	}
	return filepath.Join(home, defaultDataDirName)
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		dataDir:   dataDir,
		dbURL:     sqliteURLPrefix + filepath.Join(dataDir, DefaultDBFile),
		pool:      NewPoolConfig(),
		logLevel:  DefaultLogLevel,
		logFormat: LogFormatPretty,
	}
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// Pool returns the connection pool limits.
func (c AppConfig) Pool() PoolConfig { return c.pool }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// RulesFile returns the taxonomy rule table override, or empty for the
// embedded default.
func (c AppConfig) RulesFile() string { return c.rulesFile }

// MetricsTextfile returns where run metrics are written, or empty to skip.
func (c AppConfig) MetricsTextfile() string { return c.metricsTextfile }

// UsesDefaultDB reports whether the database lives in the data directory.
func (c AppConfig) UsesDefaultDB() bool {
	return c.dbURL == sqliteURLPrefix+filepath.Join(c.dataDir, DefaultDBFile)
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithDataDir sets the data directory. A database URL still pointing at the
// previous default location follows the new directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		followDefault := c.dbURL == "" || c.UsesDefaultDB()
		c.dataDir = dir
		if followDefault {
			c.dbURL = sqliteURLPrefix + filepath.Join(dir, DefaultDBFile)
		}
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithPool sets the connection pool limits.
func WithPool(p PoolConfig) AppConfigOption {
	return func(c *AppConfig) { c.pool = p }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithRulesFile sets the taxonomy rule table override.
func WithRulesFile(path string) AppConfigOption {
	return func(c *AppConfig) { c.rulesFile = path }
}

// WithMetricsTextfile sets the metrics output file.
func WithMetricsTextfile(path string) AppConfigOption {
	return func(c *AppConfig) { c.metricsTextfile = path }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	return NewAppConfig().Apply(opts...)
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("data_dir", c.dataDir),
		slog.String("db_url", c.maskedDBURL()),
		slog.Int("db_max_open_conns", c.pool.maxOpen),
		slog.String("log_level", c.logLevel),
		slog.String("rules_file", orDefault(c.rulesFile, "(embedded)")),
		slog.String("metrics_textfile", orDefault(c.metricsTextfile, "(disabled)")),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	return maskedPostgresDescription
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
