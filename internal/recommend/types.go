// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package recommend

import (
	"time"

	"github.com/tomtom215/playsense/internal/models"
	"github.com/tomtom215/playsense/internal/mood"
)

// Mode identifies which scoring path produced a response.
type Mode string

const (
	// ModeMood scores candidates against a mood forecast only.
	ModeMood Mode = "mood"
	// ModePersona scores candidates against a full persona state.
	ModePersona Mode = "persona"
)

// Forecast is the predicted mood a mood-based request scores against.
type Forecast struct {
	// Mood is the predicted dominant mood dimension.
	Mood string `json:"mood"`

	// Vector optionally carries the full predicted vector.
	Vector *mood.Vector `json:"vector,omitempty"`

	// Confidence is the forecast confidence in [0,1]. Low confidence pulls
	// scores toward neutral.
	Confidence float64 `json:"confidence"`
}

// Scored is one ranked recommendation with its sub-scores and explanation.
type Scored struct {
	// Game is the candidate.
	Game models.Game `json:"game"`

	// Score is the combined ranking score in [0,100].
	Score float64 `json:"score"`

	// MoodMatch, IntentMatch, and BehaviorMatch are the per-aspect
	// sub-scores, each in [0,100].
	MoodMatch     float64 `json:"mood_match"`
	IntentMatch   float64 `json:"intent_match"`
	BehaviorMatch float64 `json:"behavior_match"`

	// Explanations holds at most two reasons, highest priority first.
	Explanations []string `json:"explanations,omitempty"`
}

// Response is a ranked, bounded recommendation list.
type Response struct {
	// Items is ordered by score descending; candidates with equal scores
	// keep their input order.
	Items []Scored `json:"items"`

	// TotalCandidates is how many games were considered before truncation.
	TotalCandidates int `json:"total_candidates"`

	// Metadata carries timing and diagnostic information.
	Metadata Metadata `json:"metadata"`
}

// Metadata carries timing and diagnostic information for a response.
type Metadata struct {
	RequestID string    `json:"request_id"`
	UserID    string    `json:"user_id"`
	Mode      Mode      `json:"mode"`
	LatencyMS int64     `json:"latency_ms"`
	CacheHit  bool      `json:"cache_hit"`
	Timestamp time.Time `json:"timestamp"`
}

// Options tunes a persona-based request.
type Options struct {
	// Limit bounds the returned list; zero means the configured default.
	Limit int `json:"limit,omitempty"`

	// IncludeRecent keeps recently played games in the candidate pool.
	// By default they are excluded.
	IncludeRecent bool `json:"include_recent,omitempty"`
}

// context is the scoring context a persona state flattens into. Internal to
// the scoring pipeline.
type scoringContext struct {
	mood              string
	intent            string
	moodIntensity     int
	budgetMinutes     float64
	socialPreference  float64
	difficultyPref    float64
	excludeRecent     bool
	recentGameIDs     map[string]struct{}
	genreAffinities   map[string]float64
	favoredGenres     []string // affinity-filtered, above the favored threshold
	timeOfDay         int
	dayOfWeek         time.Weekday
	personaConfidence float64
}
