package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1000, cfg.MaxConnections)
	assert.Equal(t, 30, cfg.PingInterval)
	assert.Equal(t, 10, cfg.WriteTimeout)
	assert.Equal(t, 1024, cfg.ReadBufferSize)
	assert.Equal(t, 1024, cfg.WriteBufferSize)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":4444", cfg.ListenAddr)
	assert.Equal(t, "data/appointments.db", cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "@every 1m", cfg.SweepSchedule)
	assert.Equal(t, "@daily", cfg.PurgeSchedule)
	assert.Equal(t, 30, cfg.PurgeAfter)
	assert.Equal(t, 1000, cfg.Socket.MaxConnections)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("WS_MAX_CONNECTIONS", "25")
	t.Setenv("WHATSAPP_TEST_MODE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, 25, cfg.Socket.MaxConnections)
	assert.True(t, cfg.Twilio.TestMode)
}
