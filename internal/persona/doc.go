// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

// Package persona owns the durable per-user profile: traits, current mood
// and intent, behavioral patterns, and bounded history logs.
//
// Lifecycle: a persona is created with low confidence on first access,
// mutated by every mood/intent/behavior/session/achievement event through
// pure apply functions, and recomputed wholesale by AnalyzePersona when it
// goes stale (older than 24h by default). Confidence follows the fixed
// saturation curve min(dataPoints/50, 1) where dataPoints grows only via
// full analysis.
//
// Events are a closed sum type sealed by an unexported marker method; the
// dispatch switches over every variant and silently ignores anything else.
// The Service performs at most one consistent write per call, no retries,
// and no conflict resolution: concurrent updates for one user are
// last-write-wins and must be serialized externally if ordering matters.
package persona
