// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

// Package store persists personas, game libraries, session history,
// integration activity, and mood snapshots.
//
// Badger is the production implementation, a BadgerDB key-value façade
// storing JSON records under typed key prefixes. Session and snapshot
// keys embed a zero-padded nanosecond timestamp so prefix iteration
// yields chronological order without a secondary index. Memory mirrors
// the same behavior for tests.
//
// Both implementations satisfy persona.Store and mood.SnapshotStore,
// which are declared by their consumer packages.
package store
