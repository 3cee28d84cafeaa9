// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package feature

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/playsense/internal/models"
	"github.com/tomtom215/playsense/internal/signal"
)

func sessionSignals(t *testing.T, sessions []models.GameSession) []signal.Behavioral {
	t.Helper()
	c := signal.NewCollector(0, zerolog.Nop())
	c.CollectSessions(sessions)
	return c.Signals()
}

func TestExtractEmptyReturnsNeutral(t *testing.T) {
	e := NewExtractor(zerolog.Nop())

	got := e.Extract(nil)
	want := Neutral()
	if got != want {
		t.Fatalf("Extract(nil) = %+v, want all-0.5 neutral %+v", got, want)
	}
	if got.EngagementVolatility != 0.5 {
		t.Errorf("neutral volatility = %v, want exactly 0.5", got.EngagementVolatility)
	}
}

func TestExtractRangesAlwaysValid(t *testing.T) {
	e := NewExtractor(zerolog.Nop())
	base := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		sessions []models.GameSession
	}{
		{
			name: "identical sessions",
			sessions: []models.GameSession{
				{StartedAt: base, DurationMinutes: 60, Kind: models.SessionMain},
				{StartedAt: base.Add(time.Hour), DurationMinutes: 60, Kind: models.SessionMain},
			},
		},
		{
			name: "wildly varying durations",
			sessions: []models.GameSession{
				{StartedAt: base, DurationMinutes: 5},
				{StartedAt: base.Add(time.Hour), DurationMinutes: 600},
				{StartedAt: base.Add(2 * time.Hour), DurationMinutes: 1},
			},
		},
		{
			name: "single session",
			sessions: []models.GameSession{
				{StartedAt: base, DurationMinutes: 42, Completed: true, Social: true},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := e.Extract(sessionSignals(t, tc.sessions))
			res := e.Validate(f)
			if !res.Valid {
				t.Fatalf("features out of range: %+v issues=%v", f, res.Issues)
			}
		})
	}
}

func TestVolatilityIdenticalDurationsIsZero(t *testing.T) {
	e := NewExtractor(zerolog.Nop())
	base := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)

	f := e.Extract(sessionSignals(t, []models.GameSession{
		{StartedAt: base, DurationMinutes: 45},
		{StartedAt: base.Add(time.Hour), DurationMinutes: 45},
		{StartedAt: base.Add(2 * time.Hour), DurationMinutes: 45},
	}))

	if f.EngagementVolatility != 0 {
		t.Errorf("volatility = %v, want 0 for identical durations", f.EngagementVolatility)
	}
}

func TestSocialOpennessBlend(t *testing.T) {
	e := NewExtractor(zerolog.Nop())
	base := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)

	// All sessions social, no activity signals: the missing activity
	// component contributes neutral 0.5, so 0.6*1 + 0.4*0.5 = 0.8.
	f := e.Extract(sessionSignals(t, []models.GameSession{
		{StartedAt: base, DurationMinutes: 30, Social: true},
		{StartedAt: base.Add(time.Hour), DurationMinutes: 30, Social: true},
	}))

	if math.Abs(f.SocialOpenness-0.8) > 1e-9 {
		t.Errorf("social openness = %v, want 0.8", f.SocialOpenness)
	}
}

func TestChallengeSeekingBlend(t *testing.T) {
	e := NewExtractor(zerolog.Nop())
	base := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)

	// All main sessions high intensity, no genre transitions: the genre
	// component is neutral, so 0.6*1 + 0.4*0.5 = 0.8.
	f := e.Extract(sessionSignals(t, []models.GameSession{
		{StartedAt: base, DurationMinutes: 30, Kind: models.SessionMain, Intensity: models.IntensityHigh},
		{StartedAt: base.Add(time.Hour), DurationMinutes: 30, Kind: models.SessionMain, Intensity: models.IntensityHigh},
	}))

	if math.Abs(f.ChallengeSeeking-0.8) > 1e-9 {
		t.Errorf("challenge seeking = %v, want 0.8", f.ChallengeSeeking)
	}
}

func TestValidateRanges(t *testing.T) {
	e := NewExtractor(zerolog.Nop())

	cases := []struct {
		name      string
		features  Normalized
		wantValid bool
	}{
		{"neutral", Neutral(), true},
		{"bounds", Normalized{EngagementVolatility: 0, ChallengeSeeking: 1, SocialOpenness: 0.5, ExplorationBias: 0.5, FocusStability: 0.5}, true},
		{"negative", Normalized{EngagementVolatility: -0.01, ChallengeSeeking: 0.5, SocialOpenness: 0.5, ExplorationBias: 0.5, FocusStability: 0.5}, false},
		{"above one", Normalized{EngagementVolatility: 0.5, ChallengeSeeking: 1.01, SocialOpenness: 0.5, ExplorationBias: 0.5, FocusStability: 0.5}, false},
		{"nan", Normalized{EngagementVolatility: math.NaN(), ChallengeSeeking: 0.5, SocialOpenness: 0.5, ExplorationBias: 0.5, FocusStability: 0.5}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := e.Validate(tc.features)
			if res.Valid != tc.wantValid {
				t.Errorf("Valid = %v, want %v (issues: %v)", res.Valid, tc.wantValid, res.Issues)
			}
		})
	}
}

func TestValidateAdvisoryIssues(t *testing.T) {
	e := NewExtractor(zerolog.Nop())

	res := e.Validate(Normalized{
		EngagementVolatility: 0.97,
		ChallengeSeeking:     0.9,
		SocialOpenness:       0.5,
		ExplorationBias:      0.5,
		FocusStability:       0.1,
	})

	if !res.Valid {
		t.Fatalf("advisory findings must not invalidate the result: %v", res.Issues)
	}
	if len(res.Issues) != 2 {
		t.Errorf("issues = %v, want 2 advisory findings", res.Issues)
	}
}
