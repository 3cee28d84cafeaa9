// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package signal

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/playsense/internal/models"
)

func testSession(i int, genre, platform string, minutes float64) models.GameSession {
	return models.GameSession{
		ID:              fmt.Sprintf("s%d", i),
		UserID:          "u1",
		GameID:          fmt.Sprintf("g%d", i),
		Genre:           genre,
		Platform:        platform,
		StartedAt:       time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour),
		DurationMinutes: minutes,
		Kind:            models.SessionMain,
		Intensity:       models.IntensityMedium,
	}
}

func TestCollectSessions(t *testing.T) {
	c := NewCollector(0, zerolog.Nop())

	sessions := []models.GameSession{
		testSession(0, "rpg", "steam", 60),
		testSession(1, "rpg", "steam", 45),
	}
	out := c.CollectSessions(sessions)

	if len(out) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(out))
	}
	for i, s := range out {
		if s.Source != SourceSession {
			t.Errorf("signal %d: source = %q, want %q", i, s.Source, SourceSession)
		}
		if s.Weight != WeightSession {
			t.Errorf("signal %d: weight = %v, want %v", i, s.Weight, WeightSession)
		}
	}
	if got := out[0].Data["duration_minutes"]; got != 60.0 {
		t.Errorf("duration_minutes = %v, want 60", got)
	}

	if got := len(c.Signals()); got != 2 {
		t.Errorf("buffered signals = %d, want 2", got)
	}
}

func TestCollectEmptyInputs(t *testing.T) {
	c := NewCollector(0, zerolog.Nop())

	if out := c.CollectSessions(nil); len(out) != 0 {
		t.Errorf("CollectSessions(nil) = %d signals, want 0", len(out))
	}
	if out := c.CollectGenreTransitions(nil); len(out) != 0 {
		t.Errorf("CollectGenreTransitions(nil) = %d signals, want 0", len(out))
	}
	if out := c.CollectActivities(nil); len(out) != 0 {
		t.Errorf("CollectActivities(nil) = %d signals, want 0", len(out))
	}
	if st := c.Stats(); st.Total != 0 || st.Dropped != 0 {
		t.Errorf("Stats after empty collection = %+v, want zero totals", st)
	}
}

func TestBufferEvictionFIFO(t *testing.T) {
	c := NewCollector(5, zerolog.Nop())

	var sessions []models.GameSession
	for i := 0; i < 8; i++ {
		sessions = append(sessions, testSession(i, "rpg", "steam", 30))
	}
	c.CollectSessions(sessions)

	signals := c.Signals()
	if len(signals) != 5 {
		t.Fatalf("buffered = %d, want 5", len(signals))
	}

	// Oldest three were evicted; the survivors are sessions 3..7 in order.
	if got := signals[0].Data["game_id"]; got != "g3" {
		t.Errorf("oldest surviving signal = %v, want g3", got)
	}
	if got := signals[4].Data["game_id"]; got != "g7" {
		t.Errorf("newest signal = %v, want g7", got)
	}

	if st := c.Stats(); st.Dropped != 3 {
		t.Errorf("dropped = %d, want 3", st.Dropped)
	}
}

func TestStats(t *testing.T) {
	c := NewCollector(0, zerolog.Nop())

	c.CollectSessions([]models.GameSession{
		testSession(0, "rpg", "steam", 30),
		testSession(2, "rpg", "steam", 30),
	})
	c.CollectActivities([]models.Activity{
		{Source: "discord", Type: "voice_join", Social: true, Timestamp: time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC)},
	})

	st := c.Stats()
	if st.Total != 3 {
		t.Fatalf("total = %d, want 3", st.Total)
	}
	if st.BySource[SourceSession] != 2 || st.BySource[SourceIntegration] != 1 {
		t.Errorf("by source = %v", st.BySource)
	}
	if !st.Newest.After(st.Oldest) {
		t.Errorf("newest %v not after oldest %v", st.Newest, st.Oldest)
	}

	c.Clear()
	if st := c.Stats(); st.Total != 0 {
		t.Errorf("total after clear = %d, want 0", st.Total)
	}
}

func TestDeriveGenreTransitions(t *testing.T) {
	sessions := []models.GameSession{
		// Out of order on purpose; derivation sorts by start time.
		testSession(2, "Puzzle", "steam", 30),
		testSession(0, "rpg", "steam", 30),
		testSession(1, "RPG", "steam", 30),
		testSession(3, "", "steam", 30),
		testSession(4, "roguelike", "steam", 30),
	}

	got := DeriveGenreTransitions(sessions)
	want := []struct{ from, to string }{
		{"RPG", "Puzzle"},
		{"Puzzle", "roguelike"},
	}
	if len(got) != len(want) {
		t.Fatalf("transitions = %d, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].From != w.from || got[i].To != w.to {
			t.Errorf("transition %d = %s->%s, want %s->%s", i, got[i].From, got[i].To, w.from, w.to)
		}
	}
}

func TestCollectGenreTransitionsChallengeFlag(t *testing.T) {
	c := NewCollector(0, zerolog.Nop())
	out := c.CollectGenreTransitions([]GenreTransition{
		{From: "puzzle", To: "Roguelike", At: time.Now()},
		{From: "roguelike", To: "simulation", At: time.Now()},
	})

	if got := out[0].Data["challenge"]; got != true {
		t.Errorf("transition into roguelike: challenge = %v, want true", got)
	}
	if got := out[1].Data["challenge"]; got != false {
		t.Errorf("transition into simulation: challenge = %v, want false", got)
	}
}

func TestDerivePlatformSwitches(t *testing.T) {
	sessions := []models.GameSession{
		testSession(0, "rpg", "steam", 30),
		testSession(1, "rpg", "Steam", 30),
		testSession(2, "rpg", "switch", 30),
	}

	got := DerivePlatformSwitches(sessions)
	if len(got) != 1 {
		t.Fatalf("switches = %d, want 1: %+v", len(got), got)
	}
	if got[0].From != "Steam" || got[0].To != "switch" {
		t.Errorf("switch = %s->%s, want Steam->switch", got[0].From, got[0].To)
	}
}

func TestDerivePlaytimeSeries(t *testing.T) {
	day1 := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 2, 21, 0, 0, 0, time.UTC)
	sessions := []models.GameSession{
		{StartedAt: day2, DurationMinutes: 20},
		{StartedAt: day1, DurationMinutes: 30},
		{StartedAt: day1.Add(2 * time.Hour), DurationMinutes: 45},
	}

	got := DerivePlaytimeSeries(sessions)
	if len(got) != 2 {
		t.Fatalf("points = %d, want 2", len(got))
	}
	if got[0].Minutes != 75 {
		t.Errorf("day 1 minutes = %v, want 75", got[0].Minutes)
	}
	if got[1].Minutes != 20 {
		t.Errorf("day 2 minutes = %v, want 20", got[1].Minutes)
	}
	if !got[0].Day.Before(got[1].Day) {
		t.Errorf("series not ascending: %v, %v", got[0].Day, got[1].Day)
	}
}

func TestSignalsReturnsCopy(t *testing.T) {
	c := NewCollector(0, zerolog.Nop())
	c.CollectSessions([]models.GameSession{testSession(0, "rpg", "steam", 30)})

	first := c.Signals()
	first[0].Source = SourcePlatform

	if got := c.Signals()[0].Source; got != SourceSession {
		t.Errorf("buffer mutated through returned slice: source = %q", got)
	}
}
