// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

// Package metrics declares the Prometheus instrumentation for the API,
// the mood analysis pipeline, persona updates, and recommendations.
// Collectors register through promauto on the default registry and are
// served by the /metrics endpoint.
package metrics
