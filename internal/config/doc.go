// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

// Package config loads application configuration with koanf.
//
// Precedence is ENV > file > defaults. The YAML file is optional and
// discovered from a fixed path list or the CONFIG_PATH variable;
// environment overrides use the PLAYSENSE_ prefix. Load validates the
// merged result before returning it.
package config
