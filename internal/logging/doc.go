// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

// Package logging wraps zerolog behind a small global façade.
//
// The package initializes itself with sane defaults so logging works
// before main() calls Init with the loaded configuration. Components
// derive child loggers tagged with a component field rather than
// logging through the global directly:
//
//	logger := logging.WithComponent("persona")
//	logger.Info().Str("user_id", id).Msg("persona refreshed")
package logging
