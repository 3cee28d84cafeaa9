// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in priority
// order. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/playsense/config.yaml",
	"/etc/playsense/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix namespaces the environment variables the loader reads.
const envPrefix = "PLAYSENSE_"

// Load builds the configuration from layered sources:
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML file, if one exists
//  3. Environment: PLAYSENSE_-prefixed variables, highest priority
//
// Environment variable names map to koanf paths by stripping the prefix
// and lowercasing: PLAYSENSE_SERVER_PORT -> server.port.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envTransform maps PLAYSENSE_SECTION_SOME_KEY to section.some_key. Only
// the first underscore separates the section; the rest stay as one key
// so multi-word fields like stale_after round-trip.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.SplitN(s, "_", 2)
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}

// findConfigFile returns the first existing config file path, or empty.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
