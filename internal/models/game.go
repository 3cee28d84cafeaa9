// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package models

import "strings"

// Difficulty buckets used across scoring. Free-form difficulty strings from
// platform integrations are normalized through ParseDifficulty.
const (
	DifficultyEasy   = "easy"
	DifficultyNormal = "normal"
	DifficultyHard   = "hard"
	DifficultyExpert = "expert"
)

// Game represents a candidate title from a user's library.
type Game struct {
	// ID is the platform-agnostic game identifier.
	ID string `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Genre is the primary genre (lowercased on ingest).
	Genre string `json:"genre"`

	// Tags is a slice of descriptive tags (e.g. "multiplayer", "roguelike").
	Tags []string `json:"tags,omitempty"`

	// EstimatedPlaytimeMinutes is the typical session length for this title.
	EstimatedPlaytimeMinutes int `json:"estimated_playtime_minutes"`

	// Difficulty is one of the Difficulty* constants.
	Difficulty string `json:"difficulty,omitempty"`

	// Platform is the platform the game was imported from (steam, gog, ...).
	Platform string `json:"platform,omitempty"`
}

// HasTag reports whether the game carries the given tag, case-insensitively.
func (g Game) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// IsMultiplayer reports whether the game is tagged for multiplayer or co-op.
func (g Game) IsMultiplayer() bool {
	return g.HasTag("multiplayer") || g.HasTag("co-op") || g.HasTag("coop") || g.HasTag("online")
}

// IsChallenging reports whether the game sits in the hard or expert bucket.
func (g Game) IsChallenging() bool {
	return g.Difficulty == DifficultyHard || g.Difficulty == DifficultyExpert
}

// ParseDifficulty normalizes a free-form difficulty label to one of the
// Difficulty* constants. Unknown labels map to normal.
func ParseDifficulty(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case DifficultyEasy, "casual", "story":
		return DifficultyEasy
	case DifficultyHard, "veteran":
		return DifficultyHard
	case DifficultyExpert, "nightmare", "extreme":
		return DifficultyExpert
	default:
		return DifficultyNormal
	}
}
