// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package persona

import (
	"time"
)

// Update is a partial persona update. Nil fields are skipped; an entirely
// empty update only refreshes UpdatedAt and the derived confidence.
type Update struct {
	Mood     *MoodEvent     `json:"mood,omitempty"`
	Intent   *IntentEvent   `json:"intent,omitempty"`
	Behavior *BehaviorEvent `json:"behavior,omitempty"`

	// Event is an arbitrary persona event processed through the tagged
	// dispatch. It may duplicate the typed fields above; both paths end in
	// the same apply functions.
	Event Event `json:"-"`
}

// The apply functions below each take a persona by value and return a new
// snapshot; none of them mutates shared history slices in place. Composing
// them forms the update pipeline.

// applyMood records a mood event and updates the current mood fields.
func applyMood(p UnifiedPersona, ev MoodEvent) UnifiedPersona {
	at := orNow(ev.At)
	intensity := ev.Intensity
	if intensity == 0 {
		intensity = p.MoodIntensity
	}
	intensity = clampIntensity(intensity)

	p.CurrentMood = ev.Mood
	p.MoodIntensity = intensity
	p.History.Moods = pushBounded(p.History.Moods, MoodEntry{
		Mood:      ev.Mood,
		Intensity: intensity,
		Source:    ev.Source,
		At:        at,
	}, MaxMoodHistory)
	return p
}

// applyIntent records an intent event and updates the current intent.
func applyIntent(p UnifiedPersona, ev IntentEvent) UnifiedPersona {
	p.CurrentIntent = ev.Intent
	p.History.Intents = pushBounded(p.History.Intents, IntentEntry{
		Intent: ev.Intent,
		Source: ev.Source,
		At:     orNow(ev.At),
	}, MaxIntentHistory)
	return p
}

// applyBehavior records a gameplay action against the recent-games list.
func applyBehavior(p UnifiedPersona, ev BehaviorEvent) UnifiedPersona {
	if ev.GameID == "" {
		return p
	}
	p.Patterns.RecentGames = pushRecentGame(p.Patterns.RecentGames, RecentGame{
		GameID:   ev.GameID,
		PlayedAt: orNow(ev.At),
	})
	return p
}

// applySession folds a finished session into the behavioral patterns using
// a cheap rolling update. Full analysis later recomputes these exactly.
func applySession(p UnifiedPersona, ev SessionEvent) UnifiedPersona {
	s := ev.Session
	if s.GameID != "" {
		p.Patterns.RecentGames = pushRecentGame(p.Patterns.RecentGames, RecentGame{
			GameID:   s.GameID,
			PlayedAt: orNow(s.StartedAt),
		})
	}

	// Exponential rolling blend keeps the incremental path O(1).
	const blend = 0.2
	stats := p.Patterns.SessionStats
	if stats.AvgDurationMinutes == 0 {
		stats.AvgDurationMinutes = s.DurationMinutes
	} else {
		stats.AvgDurationMinutes = (1-blend)*stats.AvgDurationMinutes + blend*s.DurationMinutes
	}
	p.Patterns.SessionStats = stats

	completed := 0.0
	if s.Completed {
		completed = 1.0
	}
	p.Patterns.CompletionRate = clamp01((1-blend)*p.Patterns.CompletionRate + blend*completed)
	p.Patterns.AbandonRate = clamp01(1 - p.Patterns.CompletionRate)
	return p
}

// applyAchievement records the game as recently played and nudges the
// completion rate upward; an unlock is completion evidence.
func applyAchievement(p UnifiedPersona, ev AchievementEvent) UnifiedPersona {
	if ev.GameID != "" {
		p.Patterns.RecentGames = pushRecentGame(p.Patterns.RecentGames, RecentGame{
			GameID:   ev.GameID,
			PlayedAt: orNow(ev.At),
		})
	}
	const nudge = 0.05
	p.Patterns.CompletionRate = clamp01(p.Patterns.CompletionRate + nudge)
	p.Patterns.AbandonRate = clamp01(1 - p.Patterns.CompletionRate)
	return p
}

// applyEvent dispatches one event through the tagged-variant switch.
// Unknown variants return the persona unchanged.
func applyEvent(p UnifiedPersona, ev Event) UnifiedPersona {
	switch e := ev.(type) {
	case MoodEvent:
		return applyMood(p, e)
	case *MoodEvent:
		return applyMood(p, *e)
	case IntentEvent:
		return applyIntent(p, e)
	case *IntentEvent:
		return applyIntent(p, *e)
	case BehaviorEvent:
		return applyBehavior(p, e)
	case *BehaviorEvent:
		return applyBehavior(p, *e)
	case SessionEvent:
		return applySession(p, e)
	case *SessionEvent:
		return applySession(p, *e)
	case AchievementEvent:
		return applyAchievement(p, e)
	case *AchievementEvent:
		return applyAchievement(p, *e)
	default:
		return p
	}
}

// recomputeDerived refreshes the derived fields after any mutation.
// Confidence is the fixed saturation curve min(DataPoints/50, 1).
func recomputeDerived(p UnifiedPersona, now time.Time) UnifiedPersona {
	p.Confidence = clamp01(float64(p.DataPoints) / 50.0)
	p.UpdatedAt = now
	return p
}

// pushBounded appends entry to list, dropping the oldest entries when the
// result would exceed limit. The returned slice is always a fresh copy.
func pushBounded[T any](list []T, entry T, limit int) []T {
	start := 0
	if len(list)+1 > limit {
		start = len(list) + 1 - limit
	}
	out := make([]T, 0, len(list)-start+1)
	out = append(out, list[start:]...)
	return append(out, entry)
}

// pushRecentGame appends a recent-game entry, deduplicating on game id so a
// game moves to the newest slot instead of occupying several.
func pushRecentGame(list []RecentGame, entry RecentGame) []RecentGame {
	filtered := make([]RecentGame, 0, len(list)+1)
	for _, g := range list {
		if g.GameID != entry.GameID {
			filtered = append(filtered, g)
		}
	}
	return pushBounded(filtered, entry, MaxRecentGames)
}

// orNow substitutes the current time for a zero timestamp.
func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
