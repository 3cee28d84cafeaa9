// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package models

import "time"

// SessionKind classifies what a play session was.
type SessionKind string

const (
	// SessionMain is a primary play session of the user's current title.
	SessionMain SessionKind = "main"
	// SessionSide is a short detour session (warm-up, daily challenge, demo).
	SessionSide SessionKind = "side"
)

// SessionIntensity is the self-reported or integration-derived intensity of
// a session.
type SessionIntensity string

const (
	IntensityLow    SessionIntensity = "low"
	IntensityMedium SessionIntensity = "medium"
	IntensityHigh   SessionIntensity = "high"
)

// GameSession is a single recorded play session from a user's history.
type GameSession struct {
	// ID is the session identifier assigned by the ingesting integration.
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"user_id"`

	// GameID references the game that was played.
	GameID string `json:"game_id"`

	// Genre is the genre of the game at the time of play.
	Genre string `json:"genre,omitempty"`

	// Platform is where the session happened (steam, xbox, switch, ...).
	Platform string `json:"platform,omitempty"`

	// StartedAt is when the session began.
	StartedAt time.Time `json:"started_at"`

	// DurationMinutes is the session length in minutes.
	DurationMinutes float64 `json:"duration_minutes"`

	// Completed indicates the session ended at a natural stopping point
	// (quest finished, match concluded) rather than being abandoned.
	Completed bool `json:"completed"`

	// Kind classifies the session as main or side play.
	Kind SessionKind `json:"kind,omitempty"`

	// Intensity is the observed intensity bucket.
	Intensity SessionIntensity `json:"intensity,omitempty"`

	// Social indicates a co-op or multiplayer session.
	Social bool `json:"social"`
}

// EndedAt returns the session end time derived from start and duration.
func (s GameSession) EndedAt() time.Time {
	return s.StartedAt.Add(time.Duration(s.DurationMinutes * float64(time.Minute)))
}

// Activity is a raw event from a platform integration (Discord presence,
// Steam friend activity, achievement feeds). The core never fetches these
// itself; integrations push them in.
type Activity struct {
	// Source names the integration that produced the event.
	Source string `json:"source"`

	// Type is the integration-specific event type (message, voice_join,
	// achievement, invite, ...).
	Type string `json:"type"`

	// Social flags events that involved interaction with other players.
	Social bool `json:"social"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// GameID optionally links the event to a game.
	GameID string `json:"game_id,omitempty"`
}
