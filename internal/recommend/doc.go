// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

// Package recommend ranks candidate games against either a mood forecast
// or a flattened persona state.
//
// Every candidate receives three sub-scores in [0,100]: a mood match from
// a mood-to-genre affinity table, an intent match from a rule table keyed
// by the session intent, and a behavior match from session-length fit,
// genre affinity, and multiplayer alignment. All three follow the same
// shape: neutral base 50, bounded additive adjustments, final clamp.
// The combined score is a weighted blend; ranking is score-descending and
// stable, so equal scores keep their input order. Each item carries at
// most two explanation strings chosen by fixed priority.
package recommend
