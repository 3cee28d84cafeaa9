// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package signal

import "time"

// Source identifies which slice of raw history a signal was derived from.
type Source string

const (
	// SourceSession is derived from recorded play sessions.
	SourceSession Source = "session"
	// SourceGenre is derived from genre-to-genre transitions.
	SourceGenre Source = "genre"
	// SourcePlaytime is derived from the daily playtime series.
	SourcePlaytime Source = "playtime"
	// SourcePlatform is derived from platform switches.
	SourcePlatform Source = "platform"
	// SourceIntegration is derived from third-party activity events.
	SourceIntegration Source = "integration"
)

// Per-source signal weights. Session-derived signals carry the strongest
// evidence about behavior; platform switches the weakest. These are fixed
// heuristics, not learned values.
const (
	WeightSession     = 1.0
	WeightGenre       = 0.8
	WeightPlaytime    = 0.7
	WeightIntegration = 0.6
	WeightPlatform    = 0.5
)

// weightFor returns the fixed weight for a source.
func weightFor(src Source) float64 {
	switch src {
	case SourceSession:
		return WeightSession
	case SourceGenre:
		return WeightGenre
	case SourcePlaytime:
		return WeightPlaytime
	case SourceIntegration:
		return WeightIntegration
	case SourcePlatform:
		return WeightPlatform
	default:
		return 0
	}
}

// Behavioral is a single timestamped, weighted observation derived from raw
// gaming history. Signals are ephemeral: they are produced and consumed
// within one analysis pass and never persisted as-is.
type Behavioral struct {
	// Timestamp is when the underlying observation occurred.
	Timestamp time.Time `json:"timestamp"`

	// Source names the history slice the signal came from.
	Source Source `json:"source"`

	// Data carries source-specific fields (duration_minutes, completed,
	// from_genre, to_genre, social, ...).
	Data map[string]any `json:"data"`

	// Weight is the fixed per-source evidence weight in [0,1].
	Weight float64 `json:"weight"`
}

// GenreTransition records the user moving from one genre to another between
// consecutive sessions.
type GenreTransition struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	At   time.Time `json:"at"`
}

// PlatformSwitch records the user changing platforms between sessions.
type PlatformSwitch struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	At   time.Time `json:"at"`
}

// PlaytimePoint is one day of aggregated playtime.
type PlaytimePoint struct {
	Day     time.Time `json:"day"`
	Minutes float64   `json:"minutes"`
}

// Stats summarizes the collector's buffered signals.
type Stats struct {
	// Total is the number of buffered signals.
	Total int `json:"total"`

	// BySource counts buffered signals per source.
	BySource map[Source]int `json:"by_source"`

	// Oldest and Newest bound the buffered time range. Zero when empty.
	Oldest time.Time `json:"oldest"`
	Newest time.Time `json:"newest"`

	// Dropped is the number of signals evicted since the last clear.
	Dropped int `json:"dropped"`
}
