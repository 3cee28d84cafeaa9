// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package persona

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/playsense/internal/models"
)

func TestDeriveArchetypeScoresEmpty(t *testing.T) {
	scores := deriveArchetypeScores(nil, nil)
	if scores.casual != 0.5 {
		t.Errorf("casual = %v, want 0.5 fallback", scores.casual)
	}
	if scores.explorer != 0 || scores.achiever != 0 || scores.socializer != 0 || scores.competitor != 0 {
		t.Errorf("non-casual scores = %+v, want zeroes", scores)
	}
}

func TestDeriveArchetypeScoresCompletionist(t *testing.T) {
	base := time.Date(2026, 8, 1, 19, 0, 0, 0, time.UTC)
	sessions := []models.GameSession{
		{GameID: "g1", Genre: "rpg", StartedAt: base, DurationMinutes: 90, Completed: true, Kind: models.SessionMain},
		{GameID: "g1", Genre: "rpg", StartedAt: base.Add(24 * time.Hour), DurationMinutes: 95, Completed: true, Kind: models.SessionMain},
	}

	scores := deriveArchetypeScores(sessions, nil)
	if scores.achiever != 1 {
		t.Errorf("achiever = %v, want 1 for all-completed main sessions", scores.achiever)
	}
	if scores.socializer != 0 {
		t.Errorf("socializer = %v, want 0 with no social sessions", scores.socializer)
	}
	if scores.casual != 0 {
		t.Errorf("casual = %v, want 0 for long non-low-intensity sessions", scores.casual)
	}
}

func TestAnalyzePersonaEndToEnd(t *testing.T) {
	store := newStubStore()
	base := time.Date(2026, 8, 1, 20, 0, 0, 0, time.UTC)
	store.sessions["u1"] = []models.GameSession{
		{GameID: "g1", Genre: "rpg", StartedAt: base, DurationMinutes: 60, Completed: true, Kind: models.SessionMain},
		{GameID: "g2", Genre: "rpg", StartedAt: base.Add(24 * time.Hour), DurationMinutes: 50, Completed: true, Kind: models.SessionMain},
		{GameID: "g1", Genre: "rpg", StartedAt: base.Add(48 * time.Hour), DurationMinutes: 70, Completed: false, Kind: models.SessionMain},
	}
	store.games["u1"] = []models.Game{
		{ID: "g1", Genre: "rpg"},
		{ID: "g2", Genre: "rpg"},
	}

	svc := NewService(store, zerolog.Nop(), fixedClock(testNow))
	p, err := svc.AnalyzePersona(context.Background(), "u1")
	if err != nil {
		t.Fatalf("AnalyzePersona: %v", err)
	}

	if p.DataPoints != 3 {
		t.Errorf("data points = %d, want the session count 3", p.DataPoints)
	}
	if !p.LastAnalysisDate.Equal(testNow) {
		t.Errorf("last analysis = %v, want clock time", p.LastAnalysisDate)
	}
	if len(p.History.Traits) != 1 || p.History.Traits[0].Archetype != p.Traits.Archetype {
		t.Errorf("trait history = %+v, want one entry for this run", p.History.Traits)
	}
	if math.Abs(p.Confidence-3.0/50.0) > 1e-9 {
		t.Errorf("confidence = %v, want 3/50", p.Confidence)
	}
	if p.Patterns.GenreAffinities["rpg"] != 1 {
		t.Errorf("rpg affinity = %v, want 1 as the top genre", p.Patterns.GenreAffinities["rpg"])
	}

	// Result must be persisted, not only returned.
	stored, err := store.GetPersona(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetPersona after analysis: %v", err)
	}
	if stored.DataPoints != 3 {
		t.Errorf("stored data points = %d, want 3", stored.DataPoints)
	}
}

func TestInferMoodAndIntent(t *testing.T) {
	cases := []struct {
		name       string
		sig        moodSignals
		wantMood   string
		wantIntent string
	}{
		{"genre shifting wins first", moodSignals{genreShiftRatio: 0.6, socialRatio: 0.9}, "curious", IntentExplore},
		{"social", moodSignals{socialRatio: 0.6}, "social", IntentSocial},
		{"intense", moodSignals{highIntensityRatio: 0.6}, "competitive", IntentChallenge},
		{"short sessions", moodSignals{avgDurationMinutes: 20}, "calm", IntentShortSession},
		{"default", moodSignals{avgDurationMinutes: 60}, "focused", IntentProgress},
		{"empty signals", moodSignals{}, "focused", IntentProgress},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mood, intent := inferMoodAndIntent(tc.sig)
			if mood != tc.wantMood || intent != tc.wantIntent {
				t.Errorf("got (%q, %q), want (%q, %q)", mood, intent, tc.wantMood, tc.wantIntent)
			}
		})
	}
}

func TestBucketThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0, "low"}, {0.3, "low"}, {0.31, "mid"}, {0.6, "mid"}, {0.61, "high"}, {1, "high"},
	}
	for _, tc := range cases {
		if got := bucket(tc.score, "low", "mid", "high"); got != tc.want {
			t.Errorf("bucket(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestPacingBands(t *testing.T) {
	cases := []struct {
		minutes float64
		want    string
	}{
		{10, "short-burst"}, {29.9, "short-burst"}, {30, "balanced"}, {89.9, "balanced"}, {90, "marathon"}, {300, "marathon"},
	}
	for _, tc := range cases {
		if got := pacing(tc.minutes); got != tc.want {
			t.Errorf("pacing(%v) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestInferMoodIntensityBounds(t *testing.T) {
	if got := inferMoodIntensity(moodSignals{}); got < MinMoodIntensity || got > MaxMoodIntensity {
		t.Errorf("intensity for empty signals = %d, out of range", got)
	}
	if got := inferMoodIntensity(moodSignals{highIntensityRatio: 1, spikeRatio: 10}); got != MaxMoodIntensity {
		t.Errorf("intensity for maxed signals = %d, want %d", got, MaxMoodIntensity)
	}
	if got := inferMoodIntensity(moodSignals{spikeRatio: 1}); got != 1 {
		t.Errorf("intensity for quiet signals = %d, want 1", got)
	}
}

func TestExtractPatterns(t *testing.T) {
	base := time.Date(2026, 8, 3, 21, 0, 0, 0, time.UTC) // a Monday
	sessions := []models.GameSession{
		{GameID: "g1", Genre: "RPG", StartedAt: base, DurationMinutes: 60, Completed: true},
		{GameID: "g2", Genre: "rpg", StartedAt: base.Add(24 * time.Hour), DurationMinutes: 30, Completed: false},
		{GameID: "g1", Genre: "Puzzle", StartedAt: base.Add(48 * time.Hour), DurationMinutes: 30, Completed: true},
	}

	p := extractPatterns(sessions)

	if math.Abs(p.SessionStats.AvgDurationMinutes-40) > 1e-9 {
		t.Errorf("avg duration = %v, want 40", p.SessionStats.AvgDurationMinutes)
	}
	if math.Abs(p.CompletionRate-2.0/3.0) > 1e-9 {
		t.Errorf("completion = %v, want 2/3", p.CompletionRate)
	}
	if math.Abs(p.CompletionRate+p.AbandonRate-1) > 1e-9 {
		t.Errorf("completion %v + abandon %v != 1", p.CompletionRate, p.AbandonRate)
	}
	if p.SessionStats.PreferredHour != 21 {
		t.Errorf("preferred hour = %d, want 21", p.SessionStats.PreferredHour)
	}

	// Genre counting is case-insensitive; the top genre normalizes to 1.
	if p.GenreAffinities["rpg"] != 1 {
		t.Errorf("rpg affinity = %v, want 1", p.GenreAffinities["rpg"])
	}
	if math.Abs(p.GenreAffinities["puzzle"]-0.5) > 1e-9 {
		t.Errorf("puzzle affinity = %v, want 0.5", p.GenreAffinities["puzzle"])
	}

	// g1 replayed: dedup keeps two entries, g1 in the newest slot.
	if len(p.RecentGames) != 2 {
		t.Fatalf("recent games = %+v, want 2 after dedup", p.RecentGames)
	}
	if p.RecentGames[1].GameID != "g1" {
		t.Errorf("newest recent game = %q, want g1", p.RecentGames[1].GameID)
	}
}

func TestExtractPatternsEmpty(t *testing.T) {
	p := extractPatterns(nil)
	if len(p.RecentGames) != 0 || p.SessionStats.AvgDurationMinutes != 0 || len(p.GenreAffinities) != 0 {
		t.Errorf("empty sessions produced non-zero patterns: %+v", p)
	}
}

func TestModalTieBreaks(t *testing.T) {
	if got := modalInt(map[int]int{9: 2, 3: 2, 15: 1}); got != 3 {
		t.Errorf("modalInt tie = %d, want the smaller key 3", got)
	}
	if got := modalDay(map[time.Weekday]int{time.Friday: 2, time.Tuesday: 2}); got != time.Tuesday {
		t.Errorf("modalDay tie = %v, want the earlier weekday", got)
	}
}

func TestDeriveMoodSignalsSpikeRatio(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sessions := []models.GameSession{
		{GameID: "g1", StartedAt: base, DurationMinutes: 30},
		{GameID: "g1", StartedAt: base.Add(24 * time.Hour), DurationMinutes: 90},
	}

	sig := deriveMoodSignals(sessions)
	// Daily totals 30 and 90; mean 60, max 90, ratio 1.5.
	if math.Abs(sig.spikeRatio-1.5) > 1e-9 {
		t.Errorf("spike ratio = %v, want 1.5", sig.spikeRatio)
	}
	if math.Abs(sig.avgDurationMinutes-60) > 1e-9 {
		t.Errorf("avg duration = %v, want 60", sig.avgDurationMinutes)
	}
}
