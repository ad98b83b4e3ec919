package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigContent = `
[development]
backend_url = "http://localhost:8080"
backend_anon_key = "dev-anon-key"
request_timeout_seconds = 10
dev_server_host = "localhost"
dev_server_port = 8080
log_level = "trace"
log_to_stdout = true

[production]
backend_url = "https://api.pulsefit.example.com"
request_timeout_seconds = 30
redis_host = "localhost"
redis_port = 6379
log_level = "debug"
logs_path = "/var/log/pulsefit/core.log"
sentry_enabled = true
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigContent), 0o600))
	return path
}

func TestLoad_Development(t *testing.T) {
	cfg, err := Load("development", writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "http://localhost:8080", cfg.BackendURL)
	assert.Equal(t, "dev-anon-key", cfg.BackendAnonKey)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeoutDuration())
	assert.Equal(t, 8080, cfg.DevServerPort)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.SentryEnabled)
}

func TestLoad_Production(t *testing.T) {
	cfg, err := Load("prod", writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "https://api.pulsefit.example.com", cfg.BackendURL)
	assert.True(t, cfg.RedisEnabled())
	assert.True(t, cfg.SentryEnabled)
	assert.Equal(t, "/var/log/pulsefit/core.log", cfg.LogsPath)
}

func TestLoad_UnknownEnv(t *testing.T) {
	_, err := Load("staging", writeTestConfig(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown env")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("development", "/no/such/config.toml")
	require.Error(t, err)
}

func TestRequestTimeoutDefault(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 30*time.Second, cfg.RequestTimeoutDuration())
}
