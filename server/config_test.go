package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, ":8000", config.Addr)
	assert.True(t, config.Gzip)
	assert.Zero(t, config.RateLimit)
	assert.NoError(t, config.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	config := NewConfig(
		WithAddr("127.0.0.1:9000"),
		WithRateLimit(5, 10),
		WithGzip(false),
		WithShutdownTimeout(time.Second),
	)
	assert.Equal(t, "127.0.0.1:9000", config.Addr)
	assert.Equal(t, 5.0, config.RateLimit)
	assert.Equal(t, 10, config.RateBurst)
	assert.False(t, config.Gzip)
	assert.Equal(t, time.Second, config.ShutdownTimeout)
	assert.NoError(t, config.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"negative rate", func(c *Config) { c.RateLimit = -1 }},
		{"zero burst", func(c *Config) { c.RateLimit = 1; c.RateBurst = 0 }},
		{"zero shutdown", func(c *Config) { c.ShutdownTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)
			assert.Error(t, config.Validate())
		})
	}
}
