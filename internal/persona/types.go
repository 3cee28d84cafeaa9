// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package persona

import "time"

// History caps. Oldest entries drop first (FIFO by insertion order); the
// newest entry is always last.
const (
	MaxMoodHistory   = 100
	MaxIntentHistory = 50
	MaxTraitHistory  = 50
	MaxRecentGames   = 50
)

// MoodIntensity bounds.
const (
	MinMoodIntensity = 1
	MaxMoodIntensity = 10
)

// Archetype names, in tie-break priority order for the argmax in analysis.
const (
	ArchetypeExplorer   = "explorer"
	ArchetypeAchiever   = "achiever"
	ArchetypeSocializer = "socializer"
	ArchetypeCompetitor = "competitor"
	ArchetypeCasual     = "casual"
)

// Intent names. An intent is a short-lived declared or inferred session
// goal.
const (
	IntentShortSession = "short_session"
	IntentChallenge    = "challenge"
	IntentSocial       = "social"
	IntentExplore      = "explore"
	IntentRelax        = "relax"
	IntentProgress     = "progress"
)

// Traits is the archetype plus five categorical dimensions derived from
// threshold rules during analysis.
type Traits struct {
	// Archetype is the argmax of the five named archetype scores.
	Archetype string `json:"archetype"`

	// Intensity is relaxed, moderate, or intense.
	Intensity string `json:"intensity"`

	// Pacing is short-burst, balanced, or marathon.
	Pacing string `json:"pacing"`

	// Risk is cautious, balanced, or daring.
	Risk string `json:"risk"`

	// SocialStyle is solo, flexible, or group.
	SocialStyle string `json:"social_style"`

	// Discovery is familiar, mixed, or novel.
	Discovery string `json:"discovery"`
}

// MoodEntry is one entry in the bounded mood history.
type MoodEntry struct {
	Mood      string    `json:"mood"`
	Intensity int       `json:"intensity"`
	Source    string    `json:"source,omitempty"`
	At        time.Time `json:"at"`
}

// IntentEntry is one entry in the bounded intent history.
type IntentEntry struct {
	Intent string    `json:"intent"`
	Source string    `json:"source,omitempty"`
	At     time.Time `json:"at"`
}

// TraitEntry records an archetype assignment from one analysis run.
type TraitEntry struct {
	Archetype string    `json:"archetype"`
	At        time.Time `json:"at"`
}

// History holds the bounded event logs of a persona.
type History struct {
	Moods   []MoodEntry   `json:"moods,omitempty"`
	Intents []IntentEntry `json:"intents,omitempty"`
	Traits  []TraitEntry  `json:"traits,omitempty"`
}

// RecentGame is one entry in the bounded recently-played list.
type RecentGame struct {
	GameID   string    `json:"game_id"`
	PlayedAt time.Time `json:"played_at"`
}

// SessionStats aggregates session behavior from the last analysis.
type SessionStats struct {
	// AvgDurationMinutes is the mean session length.
	AvgDurationMinutes float64 `json:"avg_duration_minutes"`

	// SessionsPerWeek is the mean weekly session count.
	SessionsPerWeek float64 `json:"sessions_per_week"`

	// PreferredHour is the modal session start hour (0-23).
	PreferredHour int `json:"preferred_hour"`

	// PreferredDay is the modal session start weekday.
	PreferredDay time.Weekday `json:"preferred_day"`
}

// BehaviorPatterns captures extracted behavioral patterns.
type BehaviorPatterns struct {
	// RecentGames lists recently played games, newest last, capped.
	RecentGames []RecentGame `json:"recent_games,omitempty"`

	// SessionStats summarizes session behavior.
	SessionStats SessionStats `json:"session_stats"`

	// AbandonRate is the fraction of sessions ended without completion.
	AbandonRate float64 `json:"abandon_rate"`

	// CompletionRate is the fraction of sessions completed.
	CompletionRate float64 `json:"completion_rate"`

	// GenreAffinities maps lowercased genre to an affinity in [0,1],
	// normalized against the user's most-played genre.
	GenreAffinities map[string]float64 `json:"genre_affinities,omitempty"`
}

// UnifiedPersona is the durable per-user aggregate of traits, mood, intent,
// and behavioral patterns. It is created on first access with low
// confidence, mutated by every event, and refreshed wholesale when stale.
type UnifiedPersona struct {
	UserID string `json:"user_id"`

	Traits Traits `json:"traits"`

	// CurrentMood is the latest mood dimension name.
	CurrentMood string `json:"current_mood"`

	// CurrentIntent is the latest declared or inferred intent.
	CurrentIntent string `json:"current_intent"`

	// MoodIntensity is in [1,10].
	MoodIntensity int `json:"mood_intensity"`

	Patterns BehaviorPatterns `json:"patterns"`

	History History `json:"history"`

	// Confidence is min(DataPoints/50, 1). DataPoints grows only through
	// full analysis, never through incremental updates.
	Confidence float64 `json:"confidence"`

	// DataPoints is the number of sessions the last analysis consumed.
	DataPoints int `json:"data_points"`

	// LastAnalysisDate is when AnalyzePersona last ran. A persona older
	// than the staleness window is refreshed on read.
	LastAnalysisDate time.Time `json:"last_analysis_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// State is the flattened, read-only projection of a persona used by
// recommendation scoring. It is recomputed on every read and never
// persisted separately.
type State struct {
	UserID string `json:"user_id"`

	Archetype string `json:"archetype"`
	Mood      string `json:"mood"`
	Intent    string `json:"intent"`

	// MoodIntensity is in [1,10].
	MoodIntensity int `json:"mood_intensity"`

	// PreferredSessionMinutes is the session-length preference.
	PreferredSessionMinutes float64 `json:"preferred_session_minutes"`

	// DifficultyPreference is in [0,1]; higher prefers harder games.
	DifficultyPreference float64 `json:"difficulty_preference"`

	// SocialPreference is in [0,1]; higher prefers multiplayer.
	SocialPreference float64 `json:"social_preference"`

	// GenreAffinities maps lowercased genre to affinity in [0,1].
	GenreAffinities map[string]float64 `json:"genre_affinities,omitempty"`

	// TimeOfDay is the hour (0-23) the state was projected at.
	TimeOfDay int `json:"time_of_day"`

	// DayOfWeek is the weekday the state was projected at.
	DayOfWeek time.Weekday `json:"day_of_week"`

	// RecentGameIDs lists recently played game ids, newest first.
	RecentGameIDs []string `json:"recent_game_ids,omitempty"`

	Confidence float64 `json:"confidence"`

	// AnalyzedAt is the persona's last full-analysis time.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Stale indicates the persona was past the staleness window when the
	// state was projected.
	Stale bool `json:"stale"`
}

// clampIntensity clamps v into [1,10].
func clampIntensity(v int) int {
	if v < MinMoodIntensity {
		return MinMoodIntensity
	}
	if v > MaxMoodIntensity {
		return MaxMoodIntensity
	}
	return v
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
