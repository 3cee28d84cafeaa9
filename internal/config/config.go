// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/playsense/internal/logging"
	"github.com/tomtom215/playsense/internal/recommend"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig     `json:"server" koanf:"server"`
	Logging   logging.Config   `json:"logging" koanf:"logging"`
	Store     StoreConfig      `json:"store" koanf:"store"`
	Analysis  AnalysisConfig   `json:"analysis" koanf:"analysis"`
	Recommend recommend.Config `json:"recommend" koanf:"recommend"`
	API       APIConfig        `json:"api" koanf:"api"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host            string        `json:"host" koanf:"host"`
	Port            int           `json:"port" koanf:"port"`
	ReadTimeout     time.Duration `json:"read_timeout" koanf:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" koanf:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" koanf:"shutdown_timeout"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StoreConfig controls persistence.
type StoreConfig struct {
	// Backend selects the store implementation: "badger" or "memory".
	Backend string `json:"backend" koanf:"backend"`

	// Path is the on-disk BadgerDB directory. Ignored for the memory
	// backend; empty with the badger backend means in-memory Badger.
	Path string `json:"path" koanf:"path"`
}

// AnalysisConfig tunes the mood and persona analysis pipeline.
type AnalysisConfig struct {
	// StaleAfter is how old a persona analysis may be before a read
	// triggers re-analysis.
	StaleAfter time.Duration `json:"stale_after" koanf:"stale_after"`

	// SignalBufferCap bounds the per-analysis behavioral signal buffer.
	SignalBufferCap int `json:"signal_buffer_cap" koanf:"signal_buffer_cap"`
}

// APIConfig controls the HTTP API surface.
type APIConfig struct {
	// RateLimitRPS is the per-client sustained request rate. Zero
	// disables rate limiting.
	RateLimitRPS float64 `json:"rate_limit_rps" koanf:"rate_limit_rps"`

	// RateLimitBurst is the per-client burst allowance.
	RateLimitBurst int `json:"rate_limit_burst" koanf:"rate_limit_burst"`

	// MaxBodyBytes bounds request body size.
	MaxBodyBytes int64 `json:"max_body_bytes" koanf:"max_body_bytes"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8490,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: logging.Config{
			Level:     "info",
			Format:    "json",
			Timestamp: true,
			Caller:    false,
		},
		Store: StoreConfig{
			Backend: "badger",
			Path:    "/data/playsense",
		},
		Analysis: AnalysisConfig{
			StaleAfter:      24 * time.Hour,
			SignalBufferCap: 1024,
		},
		Recommend: recommend.DefaultConfig(),
		API: APIConfig{
			RateLimitRPS:   25,
			RateLimitBurst: 50,
			MaxBodyBytes:   1 << 20, // 1MB
		},
	}
}

// Validate checks configuration invariants after loading.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1,65535], got %d", c.Server.Port)
	}
	if c.Store.Backend != "badger" && c.Store.Backend != "memory" {
		return fmt.Errorf("store.backend must be badger or memory, got %q", c.Store.Backend)
	}
	if c.Analysis.StaleAfter <= 0 {
		return fmt.Errorf("analysis.stale_after must be positive, got %v", c.Analysis.StaleAfter)
	}
	if c.Analysis.SignalBufferCap <= 0 {
		return fmt.Errorf("analysis.signal_buffer_cap must be positive, got %d", c.Analysis.SignalBufferCap)
	}
	if c.API.RateLimitRPS < 0 {
		return fmt.Errorf("api.rate_limit_rps must be non-negative, got %v", c.API.RateLimitRPS)
	}
	if c.API.MaxBodyBytes <= 0 {
		return fmt.Errorf("api.max_body_bytes must be positive, got %d", c.API.MaxBodyBytes)
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}
