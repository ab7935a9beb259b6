package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
environment: test
market:
  base_url: https://api.warframe.market/v1
inventory:
  items_file: data/items.json
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, 10, c.Market.RateLimit.MaxRequests)
	assert.Equal(t, time.Second, c.Market.RateLimit.Window)
	assert.Equal(t, 5, c.Fetch.FirstPassWorkers)
	assert.Equal(t, 3, c.Fetch.RetryWorkers)
	assert.Equal(t, 3, c.Fetch.MaxRetryPasses)
	assert.Equal(t, 2*time.Second, c.Fetch.RetryCooldown)
	assert.Equal(t, 5, c.Fetch.TopOrdersPerItem)
	assert.Equal(t, "memory", c.Progress.Backend)
	assert.Equal(t, 5*time.Minute, c.Progress.TTL)
}

func TestLoadExplicitValues(t *testing.T) {
	c, err := Load(writeConfig(t, `
environment: production
server:
  port: 9090
market:
  base_url: https://api.warframe.market/v1
  rate_limit:
    max_requests: 4
    window: 2s
fetch:
  first_pass_workers: 8
  retry_workers: 2
  retry_cooldown: 500ms
progress:
  backend: redis
  ttl: 10m
  redis:
    host: localhost
    port: 6379
inventory:
  items_file: items.json
  balances_file: balances.json
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 4, c.Market.RateLimit.MaxRequests)
	assert.Equal(t, 2*time.Second, c.Market.RateLimit.Window)
	assert.Equal(t, 8, c.Fetch.FirstPassWorkers)
	assert.Equal(t, 500*time.Millisecond, c.Fetch.RetryCooldown)
	assert.Equal(t, "redis", c.Progress.Backend)
	assert.Equal(t, 10*time.Minute, c.Progress.TTL)
	assert.Equal(t, "balances.json", c.Inventory.BalancesFile)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"missing environment",
			"market:\n  base_url: x\ninventory:\n  items_file: y\n",
			"environment is required",
		},
		{
			"missing base url",
			"environment: test\ninventory:\n  items_file: y\n",
			"market.base_url is required",
		},
		{
			"missing items file",
			"environment: test\nmarket:\n  base_url: x\n",
			"inventory.items_file is required",
		},
		{
			"bad backend",
			minimalYAML + "progress:\n  backend: etcd\n",
			"progress.backend",
		},
		{
			"retry workers exceed pool",
			minimalYAML + "fetch:\n  first_pass_workers: 2\n  retry_workers: 4\n",
			"retry_workers",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("WFM_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("WFM_PORT", "7070")
	t.Setenv("WFM_PROGRESS_BACKEND", "redis")
	t.Setenv("WFM_REDIS_HOST", "redis.internal")
	t.Setenv("WFM_REDIS_PORT", "6380")

	c, err := LoadWithEnv(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/v1", c.Market.BaseURL)
	assert.Equal(t, 7070, c.Server.Port)
	assert.Equal(t, "redis", c.Progress.Backend)
	assert.Equal(t, "redis.internal", c.Progress.Redis.Host)
	assert.Equal(t, 6380, c.Progress.Redis.Port)
}

func TestLoadWithEnvIgnoresBadInt(t *testing.T) {
	t.Setenv("WFM_PORT", "not-a-number")

	c, err := LoadWithEnv(writeConfig(t, minimalYAML))
	require.NoError(t, err)
	assert.Equal(t, 8080, c.Server.Port)
}
