package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OnlySetVariablesOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GZAP_POLL_INTERVAL", "5s")
	t.Setenv("GZAP_FAIL_OPEN", "false")
	t.Setenv("GZAP_RATE_LIMIT", "2.5")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.False(t, cfg.FailOpenOnIdentityError)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, "http://127.0.0.1:3333", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestParseEnv_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GZAP_HEALTH_ADDR=127.0.0.1:50051\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("GZAP_HEALTH_ADDR") })

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "127.0.0.1:50051", cfg.HealthAddr)
}

func TestParseEnv_BadValuePanics(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GZAP_POLL_INTERVAL", "soon")

	var cfg Config
	require.Panics(t, func() { parseEnv(&cfg) })
}
