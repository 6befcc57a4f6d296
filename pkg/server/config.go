// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/hostid/pkg/defaults"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Additional Handlers to be added to the server
	Handlers map[string]http.HandlerFunc

	// Readiness is consulted by /ready once the server is serving.
	Readiness ReadinessFunc

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration. Every API request may spawn detection
	// processes, so the limit protects the host as much as the server.
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// Environment variables read by NewConfig.
const (
	EnvPort            = "PORT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT_SECONDS"
	EnvRateLimit       = "HOSTID_RATE_LIMIT"
	EnvRateLimitBurst  = "HOSTID_RATE_LIMIT_BURST"
)

// NewConfig returns the default configuration with environment overrides
// applied. Values that are not positive integers are ignored.
func NewConfig() *Config {
	return parseConfig()
}

func parseConfig() *Config {
	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Port:              8080,
		RateLimit:         10,
		RateLimitBurst:    20,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if v, ok := envPositiveInt(EnvPort); ok {
		cfg.Port = v
	}
	if v, ok := envPositiveInt(EnvShutdownTimeout); ok {
		cfg.ShutdownTimeout = time.Duration(v) * time.Second
	}
	if v, ok := envPositiveInt(EnvRateLimit); ok {
		cfg.RateLimit = rate.Limit(v)
	}
	if v, ok := envPositiveInt(EnvRateLimitBurst); ok {
		cfg.RateLimitBurst = v
	}

	return cfg
}

func envPositiveInt(key string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		slog.Warn("ignoring invalid environment value", "key", key, "value", raw)
		return 0, false
	}
	return v, true
}
