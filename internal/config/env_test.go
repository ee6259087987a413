package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.DataDir)
	assert.Equal(t, "", cfg.DBURL)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.Equal(t, "", cfg.RulesFile)
	assert.Equal(t, 1, cfg.DB.MaxOpenConns)
	assert.Equal(t, 1, cfg.DB.MaxIdleConns)
	assert.Equal(t, 1800.0, cfg.DB.ConnMaxLifetimeSeconds)
}

func TestEnvDefaults_MatchConfigDefaults(t *testing.T) {
	clearEnvVars(t)

	env, err := LoadFromEnv()
	require.NoError(t, err)
	cfg := env.ToAppConfig()

	assert.Equal(t, DefaultLogLevel, env.LogLevel)
	assert.Equal(t, DefaultDBMaxOpenConns, cfg.Pool().MaxOpen())
	assert.Equal(t, DefaultDBMaxIdleConns, cfg.Pool().MaxIdle())
	assert.Equal(t, DefaultDBConnMaxLifetime, cfg.Pool().MaxLifetime())
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("DATA_DIR", "/srv/sitekit")
	t.Setenv("DB_URL", "postgres://site:secret@db:5432/site")
	t.Setenv("DB_MAX_OPEN_CONNS", "8")
	t.Setenv("DB_CONN_MAX_LIFETIME_SECONDS", "60")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("RULES_FILE", " /etc/sitekit/rules.yaml ")
	t.Setenv("METRICS_TEXTFILE", "/var/lib/node_exporter/sitekit.prom")

	env, err := LoadFromEnv()
	require.NoError(t, err)
	cfg := env.Normalize().ToAppConfig()

	assert.Equal(t, "/srv/sitekit", cfg.DataDir())
	assert.Equal(t, "postgres://site:secret@db:5432/site", cfg.DBURL())
	assert.Equal(t, 8, cfg.Pool().MaxOpen())
	assert.Equal(t, time.Minute, cfg.Pool().MaxLifetime())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, "/etc/sitekit/rules.yaml", cfg.RulesFile())
	assert.Equal(t, "/var/lib/node_exporter/sitekit.prom", cfg.MetricsTextfile())
}

func TestLoadFromEnv_InvalidNumber(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("DB_MAX_OPEN_CONNS", "many")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "DATA_DIR=/from/dotenv\nLOG_LEVEL=DEBUG\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	clearEnvVars(t)

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "/from/dotenv", os.Getenv("DATA_DIR"))
	assert.Equal(t, "DEBUG", os.Getenv("LOG_LEVEL"))
}

func TestLoadDotEnv_NonExistent(t *testing.T) {
	clearEnvVars(t)

	assert.NoError(t, LoadDotEnv("/nonexistent/.env"))
}

func TestLoadConfig(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "DATA_DIR=/config/data\nLOG_LEVEL=WARN\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	clearEnvVars(t)
	t.Setenv("LOG_LEVEL", "ERROR")

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "/config/data", cfg.DataDir())
	assert.Equal(t, "sqlite:///"+filepath.Join("/config/data", DefaultDBFile), cfg.DBURL())
	assert.Equal(t, "ERROR", cfg.LogLevel(), "environment wins over .env")
}

// clearEnvVars unsets every variable the loader reads and restores the
// previous values when the test ends.
func clearEnvVars(t *testing.T) {
	t.Helper()

	vars := []string{
		"DATA_DIR",
		"DB_URL",
		"DB_MAX_OPEN_CONNS",
		"DB_MAX_IDLE_CONNS",
		"DB_CONN_MAX_LIFETIME_SECONDS",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"RULES_FILE",
		"METRICS_TEXTFILE",
	}

	for _, v := range vars {
		t.Setenv(v, "")
		_ = os.Unsetenv(v)
	}
}
