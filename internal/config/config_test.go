package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data/featreq.db", cfg.DBPath)
	assert.Equal(t, "localhost:8080", cfg.ServerAddr())
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.UseRedisSessions())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FEATREQ_DB_PATH", "/tmp/test.db")
	t.Setenv("FEATREQ_SERVER_HOST", "0.0.0.0")
	t.Setenv("FEATREQ_SERVER_PORT", "9000")
	t.Setenv("FEATREQ_ENV", "production")
	t.Setenv("FEATREQ_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "0.0.0.0:9000", cfg.ServerAddr())
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.UseRedisSessions())
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("FEATREQ_SERVER_PORT", "70000")

	_, err := Load()
	require.Error(t, err)
}
