package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/hostid/pkg/defaults"
)

func clearConfigEnv(t *testing.T) {
	for _, key := range []string{EnvPort, EnvShutdownTimeout, EnvRateLimit, EnvRateLimitBurst} {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)
	cfg := NewConfig()

	assert.Empty(t, cfg.Address)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, rate.Limit(10), cfg.RateLimit)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, defaults.ServerReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, defaults.ServerReadHeaderTimeout, cfg.ReadHeaderTimeout)
	assert.Equal(t, defaults.ServerWriteTimeout, cfg.WriteTimeout)
	assert.Equal(t, defaults.ServerIdleTimeout, cfg.IdleTimeout)
	assert.Equal(t, defaults.ServerShutdownTimeout, cfg.ShutdownTimeout)
	assert.Nil(t, cfg.Readiness)
}

func TestNewConfig_Environment(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "port", key: EnvPort, value: "9090",
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, 9090, cfg.Port) },
		},
		{
			name: "invalid port ignored", key: EnvPort, value: "http",
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, 8080, cfg.Port) },
		},
		{
			name: "shutdown timeout", key: EnvShutdownTimeout, value: "5",
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout) },
		},
		{
			name: "negative shutdown timeout ignored", key: EnvShutdownTimeout, value: "-5",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, defaults.ServerShutdownTimeout, cfg.ShutdownTimeout)
			},
		},
		{
			name: "rate limit", key: EnvRateLimit, value: " 2 ",
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, rate.Limit(2), cfg.RateLimit) },
		},
		{
			name: "zero rate limit ignored", key: EnvRateLimit, value: "0",
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, rate.Limit(10), cfg.RateLimit) },
		},
		{
			name: "burst", key: EnvRateLimitBurst, value: "3",
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, 3, cfg.RateLimitBurst) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tt.key, tt.value)
			tt.check(t, NewConfig())
		})
	}
}
