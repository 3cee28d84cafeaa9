// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

// Package models defines the shared record types that flow through the
// analysis pipeline: games, play sessions, and platform activity events.
//
// These types are JSON-serializable plain records. Time fields marshal as
// RFC3339 strings at the HTTP and storage boundaries. The package has no
// dependencies on other internal packages so that every layer (signal
// collection, persona synthesis, recommendation scoring, storage) can share
// them without import cycles.
package models
