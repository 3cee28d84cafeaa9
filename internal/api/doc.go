// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

// Package api exposes the HTTP surface: mood analysis, persona reads and
// updates, recommendations, and library/session ingestion.
//
// All routes live under /api/v1 behind a middleware chain of request ID
// propagation, panic recovery, Prometheus instrumentation, and per-client
// rate limiting. Responses use a uniform envelope with a status field,
// the payload, and request metadata; errors carry a machine-readable
// code plus field-level details for validation failures.
package api
