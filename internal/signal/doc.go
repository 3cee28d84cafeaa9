// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

// Package signal turns raw gaming history into weighted behavioral signals.
//
// A signal is one timestamped observation (a session, a genre transition, a
// day of playtime, a platform switch, an integration event) tagged with a
// fixed per-source evidence weight. Collection is a pure transformation:
// empty input yields empty output, never an error.
//
// The Collector keeps a capped ring buffer of everything it produced so that
// callers can ask for statistics afterwards. Eviction is FIFO by insertion
// order. Collectors are scoped per user per analysis pass; they hold no
// cross-user state.
package signal
