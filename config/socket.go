package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/smartcare/socket/src/messaging"
)

// SocketConfig holds WebSocket server configuration.
type SocketConfig struct {
	MaxConnections  int     `envconfig:"WS_MAX_CONNECTIONS" default:"1000"`
	PingInterval    int     `envconfig:"WS_PING_INTERVAL_SECONDS" default:"30"`
	WriteTimeout    int     `envconfig:"WS_WRITE_TIMEOUT_SECONDS" default:"10"`
	ReadBufferSize  int     `envconfig:"WS_READ_BUFFER_SIZE" default:"1024"`
	WriteBufferSize int     `envconfig:"WS_WRITE_BUFFER_SIZE" default:"1024"`
	AcceptRate      float64 `envconfig:"WS_ACCEPT_RATE" default:"50"`
	AcceptBurst     int     `envconfig:"WS_ACCEPT_BURST" default:"100"`
}

// Config is the top-level application configuration, loaded from the environment.
type Config struct {
	ListenAddr    string `envconfig:"LISTEN_ADDR" default:":4444"`
	DatabasePath  string `envconfig:"DATABASE_PATH" default:"data/appointments.db"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	SweepSchedule string `envconfig:"SWEEP_SCHEDULE" default:"@every 1m"`
	PurgeSchedule string `envconfig:"PURGE_SCHEDULE" default:"@daily"`
	PurgeAfter    int    `envconfig:"PURGE_AFTER_DAYS" default:"30"`

	Socket SocketConfig
	Twilio messaging.Config
}

// Load reads configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the default WebSocket configuration.
func DefaultConfig() *SocketConfig {
	return &SocketConfig{
		MaxConnections:  1000,
		PingInterval:    30,
		WriteTimeout:    10,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		AcceptRate:      50,
		AcceptBurst:     100,
	}
}
