package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.sitekit
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/sitekit.db
	DBURL string `envconfig:"DB_URL"`

	// DB configures the connection pool.
	DB PoolEnv `envconfig:"DB"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// RulesFile replaces the embedded taxonomy rule table.
	// Env: RULES_FILE
	RulesFile string `envconfig:"RULES_FILE"`

	// MetricsTextfile is where run metrics are written on exit.
	// Env: METRICS_TEXTFILE
	MetricsTextfile string `envconfig:"METRICS_TEXTFILE"`
}

// PoolEnv holds environment configuration for the connection pool.
type PoolEnv struct {
	// MaxOpenConns limits open connections.
	// Env: DB_MAX_OPEN_CONNS (default: 1)
	MaxOpenConns int `envconfig:"MAX_OPEN_CONNS" default:"1"`

	// MaxIdleConns limits idle connections.
	// Env: DB_MAX_IDLE_CONNS (default: 1)
	MaxIdleConns int `envconfig:"MAX_IDLE_CONNS" default:"1"`

	// ConnMaxLifetimeSeconds caps how long a connection is reused.
	// Env: DB_CONN_MAX_LIFETIME_SECONDS (default: 1800)
	ConnMaxLifetimeSeconds float64 `envconfig:"CONN_MAX_LIFETIME_SECONDS" default:"1800"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// Normalize trims whitespace from string settings.
func (e EnvConfig) Normalize() EnvConfig {
	e.DataDir = strings.TrimSpace(e.DataDir)
	e.DBURL = strings.TrimSpace(e.DBURL)
	e.LogLevel = strings.TrimSpace(e.LogLevel)
	e.LogFormat = strings.TrimSpace(e.LogFormat)
	e.RulesFile = strings.TrimSpace(e.RulesFile)
	e.MetricsTextfile = strings.TrimSpace(e.MetricsTextfile)
	return e
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	var opts []AppConfigOption

	if e.DataDir != "" {
		opts = append(opts, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		opts = append(opts, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		opts = append(opts, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		opts = append(opts, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.RulesFile != "" {
		opts = append(opts, WithRulesFile(e.RulesFile))
	}
	if e.MetricsTextfile != "" {
		opts = append(opts, WithMetricsTextfile(e.MetricsTextfile))
	}
	opts = append(opts, WithPool(e.DB.ToPoolConfig()))

	return NewAppConfigWithOptions(opts...)
}

// ToPoolConfig converts PoolEnv to PoolConfig.
func (p PoolEnv) ToPoolConfig() PoolConfig {
	return NewPoolConfig().
		WithMaxOpen(p.MaxOpenConns).
		WithMaxIdle(p.MaxIdleConns).
		WithMaxLifetime(time.Duration(p.ConnMaxLifetimeSeconds * float64(time.Second)))
}

// LoadDotEnv loads variables from a .env file, ".env" when path is empty.
// A missing file is ignored and variables already set are kept.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadConfig reads the optional .env file, then the environment.
func LoadConfig(envPath string) (AppConfig, error) {
	if err := LoadDotEnv(envPath); err != nil {
		return AppConfig{}, err
	}
	env, err := LoadFromEnv()
	if err != nil {
		return AppConfig{}, err
	}
	return env.Normalize().ToAppConfig(), nil
}
