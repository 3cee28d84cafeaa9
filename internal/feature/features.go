// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package feature

// Normalized holds the five behavioral features, each in [0,1].
type Normalized struct {
	// EngagementVolatility measures how uneven session lengths are.
	// 0 = perfectly regular sessions, 1 = wildly varying.
	EngagementVolatility float64 `json:"engagement_volatility"`

	// ChallengeSeeking measures attraction to high-intensity play and
	// challenge-coded genres.
	ChallengeSeeking float64 `json:"challenge_seeking"`

	// SocialOpenness measures co-op/multiplayer play and social
	// integration activity.
	SocialOpenness float64 `json:"social_openness"`

	// ExplorationBias measures genre and platform variety.
	ExplorationBias float64 `json:"exploration_bias"`

	// FocusStability measures session completion and daily regularity.
	FocusStability float64 `json:"focus_stability"`
}

// Neutral returns the fixed unknown-state sentinel: every feature at 0.5.
// This is deliberately not zero; with no evidence the player is assumed
// average on every dimension, not absent on all of them.
func Neutral() Normalized {
	return Normalized{
		EngagementVolatility: 0.5,
		ChallengeSeeking:     0.5,
		SocialOpenness:       0.5,
		ExplorationBias:      0.5,
		FocusStability:       0.5,
	}
}

// ValidationResult reports feature validation. Issues are advisory warnings,
// never errors; callers are expected to log and continue.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues,omitempty"`
}

// clamp01 clamps v into [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
