// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
	if cfg.Server.Port != 8490 {
		t.Errorf("default port = %d, want 8490", cfg.Server.Port)
	}
	if cfg.Store.Backend != "badger" {
		t.Errorf("default backend = %q, want badger", cfg.Store.Backend)
	}
	if cfg.Analysis.StaleAfter != 24*time.Hour {
		t.Errorf("default stale_after = %v, want 24h", cfg.Analysis.StaleAfter)
	}
}

func TestServerConfigAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8490}
	if got := s.Addr(); got != "127.0.0.1:8490" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"unknown backend", func(c *Config) { c.Store.Backend = "postgres" }},
		{"non-positive stale window", func(c *Config) { c.Analysis.StaleAfter = 0 }},
		{"non-positive buffer cap", func(c *Config) { c.Analysis.SignalBufferCap = -1 }},
		{"negative rate limit", func(c *Config) { c.API.RateLimitRPS = -1 }},
		{"non-positive body limit", func(c *Config) { c.API.MaxBodyBytes = 0 }},
		{"invalid recommend config", func(c *Config) { c.Recommend.MaxRecommendations = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"PLAYSENSE_SERVER_PORT", "server.port"},
		{"PLAYSENSE_SERVER_READ_TIMEOUT", "server.read_timeout"},
		{"PLAYSENSE_ANALYSIS_STALE_AFTER", "analysis.stale_after"},
		{"PLAYSENSE_STORE_BACKEND", "store.backend"},
		{"PLAYSENSE_DEBUG", "debug"},
	}

	for _, tc := range cases {
		if got := envTransform(tc.in); got != tc.want {
			t.Errorf("envTransform(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("PLAYSENSE_SERVER_PORT", "9123")
	t.Setenv("PLAYSENSE_STORE_BACKEND", "memory")
	t.Setenv("PLAYSENSE_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9123 {
		t.Errorf("port = %d, want the env override 9123", cfg.Server.Port)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("backend = %q, want memory", cfg.Store.Backend)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched values keep their defaults.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host = %q, want the default", cfg.Server.Host)
	}
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	t.Setenv("PLAYSENSE_STORE_BACKEND", "postgres")
	if _, err := Load(); err == nil {
		t.Fatal("expected validation failure for unknown backend")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte("server:\n  port: 9200\nrecommend:\n  weights:\n    mood: 0.6\n    intent: 0.2\n    behavior: 0.2\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9200 {
		t.Errorf("port = %d, want the file value 9200", cfg.Server.Port)
	}
	if cfg.Recommend.Weights.Mood != 0.6 {
		t.Errorf("mood weight = %v, want the file value 0.6", cfg.Recommend.Weights.Mood)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9200\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PLAYSENSE_SERVER_PORT", "9300")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9300 {
		t.Errorf("port = %d, env must beat the file", cfg.Server.Port)
	}
}
