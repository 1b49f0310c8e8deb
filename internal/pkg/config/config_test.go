package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadCore(t *testing.T) {
	t.Setenv("TEST_JWT_SECRET", "from-env")
	path := writeFile(t, `
HTTP_PORT: 9000
JWT_SECRET: ${TEST_JWT_SECRET}
PROPERTY_BASE:
  BASE_URL: http://propertybase:8090
  TIMEOUT: 3s
  RETRIES: 2
REDIS:
  ADDR: localhost:6379
CORS_ORIGINS: ["*"]
`)

	var cfg Core
	require.NoError(t, Load(path, &cfg))
	cfg.Defaults()

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, "http://propertybase:8090", cfg.PropertyBase.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.PropertyBase.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Leasing.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "core", cfg.ServiceName)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadPropertyBaseDefaults(t *testing.T) {
	path := writeFile(t, `
DATABASE:
  HOST: db
  USER: app
  NAME: propertybase
KAFKA:
  BROKERS: ["kafka:9092"]
`)

	var cfg PropertyBase
	require.NoError(t, Load(path, &cfg))
	cfg.Defaults()

	assert.Equal(t, 8090, cfg.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "propertybase.components", cfg.Kafka.Topic)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
}

func TestLoadMissingFile(t *testing.T) {
	var cfg Core
	err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &cfg)
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeFile(t, "HTTP_PORT: [not a number")
	var cfg Core
	assert.Error(t, Load(path, &cfg))
}

func TestPath(t *testing.T) {
	t.Setenv("TEST_CONFIG_PATH", "")
	assert.Equal(t, "fallback.yaml", Path("TEST_CONFIG_PATH", "fallback.yaml"))
	t.Setenv("TEST_CONFIG_PATH", "custom.yaml")
	assert.Equal(t, "custom.yaml", Path("TEST_CONFIG_PATH", "fallback.yaml"))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "debug", Format: "console"}, "test")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = NewLogger(LogConfig{Level: "bogus"}, "")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
}

func TestDefaultsDropUnsetListEntries(t *testing.T) {
	path := writeFile(t, `
KAFKA:
  BROKERS:
    - ${TEST_UNSET_BROKER}
CORS_ORIGINS:
  - ${TEST_UNSET_ORIGIN}
  - https://app.example.com
`)

	var cfg Core
	require.NoError(t, Load(path, &cfg))
	cfg.Defaults()

	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "propertybase.components", cfg.Kafka.Topic)
}
