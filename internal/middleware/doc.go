// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

// Package middleware provides the HTTP middleware chain: request ID
// propagation, panic recovery, Prometheus instrumentation, and a
// per-client token-bucket rate limiter.
package middleware
