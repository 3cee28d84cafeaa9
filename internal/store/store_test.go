// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/playsense/internal/models"
	"github.com/tomtom215/playsense/internal/mood"
	"github.com/tomtom215/playsense/internal/persona"
)

// backend is the shared surface both implementations satisfy.
type backend interface {
	GetPersona(ctx context.Context, userID string) (*persona.UnifiedPersona, error)
	CreatePersona(ctx context.Context, userID string, p *persona.UnifiedPersona) error
	UpdatePersona(ctx context.Context, userID string, p *persona.UnifiedPersona) error
	DeletePersona(ctx context.Context, userID string) error

	GetUserGames(ctx context.Context, userID string) ([]models.Game, error)
	PutUserGames(ctx context.Context, userID string, games []models.Game) error
	AppendSession(ctx context.Context, s models.GameSession) error
	GetGameSessionHistory(ctx context.Context, userID, gameID string, limit, offset int) ([]models.GameSession, error)
	PutActivities(ctx context.Context, userID string, activities []models.Activity) error
	GetActivities(ctx context.Context, userID string) ([]models.Activity, error)

	SaveMoodSnapshot(ctx context.Context, userID string, result *mood.AnalysisResult) error
	LatestMoodSnapshot(ctx context.Context, userID string) (*mood.AnalysisResult, error)
	MoodSnapshots(ctx context.Context, userID string, limit int) ([]*mood.AnalysisResult, error)
}

// eachBackend runs fn against both implementations. Badger runs in-memory.
func eachBackend(t *testing.T, fn func(t *testing.T, s backend)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemory())
	})

	t.Run("badger", func(t *testing.T) {
		b, err := OpenBadger("", zerolog.Nop())
		if err != nil {
			t.Fatalf("OpenBadger: %v", err)
		}
		t.Cleanup(func() {
			if err := b.Close(); err != nil {
				t.Errorf("Close: %v", err)
			}
		})
		fn(t, b)
	})
}

func TestPersonaRoundTrip(t *testing.T) {
	eachBackend(t, func(t *testing.T, s backend) {
		ctx := context.Background()

		if _, err := s.GetPersona(ctx, "u1"); !errors.Is(err, persona.ErrPersonaNotFound) {
			t.Fatalf("miss error = %v, want ErrPersonaNotFound", err)
		}

		p := &persona.UnifiedPersona{
			UserID:        "u1",
			CurrentMood:   "calm",
			MoodIntensity: 5,
			Traits:        persona.Traits{Archetype: persona.ArchetypeExplorer},
		}
		if err := s.CreatePersona(ctx, "u1", p); err != nil {
			t.Fatalf("CreatePersona: %v", err)
		}

		got, err := s.GetPersona(ctx, "u1")
		if err != nil {
			t.Fatalf("GetPersona: %v", err)
		}
		if got.CurrentMood != "calm" || got.Traits.Archetype != persona.ArchetypeExplorer {
			t.Errorf("round trip lost fields: %+v", got)
		}

		got.CurrentMood = "competitive"
		if err := s.UpdatePersona(ctx, "u1", got); err != nil {
			t.Fatalf("UpdatePersona: %v", err)
		}
		updated, err := s.GetPersona(ctx, "u1")
		if err != nil {
			t.Fatalf("GetPersona after update: %v", err)
		}
		if updated.CurrentMood != "competitive" {
			t.Errorf("update not persisted: %+v", updated)
		}

		if err := s.DeletePersona(ctx, "u1"); err != nil {
			t.Fatalf("DeletePersona: %v", err)
		}
		if _, err := s.GetPersona(ctx, "u1"); !errors.Is(err, persona.ErrPersonaNotFound) {
			t.Fatalf("post-delete error = %v, want ErrPersonaNotFound", err)
		}
	})
}

func TestUserGames(t *testing.T) {
	eachBackend(t, func(t *testing.T, s backend) {
		ctx := context.Background()

		games, err := s.GetUserGames(ctx, "u1")
		if err != nil {
			t.Fatalf("GetUserGames miss: %v", err)
		}
		if len(games) != 0 {
			t.Fatalf("miss returned %d games, want empty slice", len(games))
		}

		in := []models.Game{
			{ID: "g1", Title: "Dragon Saga", Genre: "rpg", Tags: []string{"singleplayer"}},
			{ID: "g2", Title: "Arena Blast", Genre: "shooter", Tags: []string{"multiplayer"}},
		}
		if err := s.PutUserGames(ctx, "u1", in); err != nil {
			t.Fatalf("PutUserGames: %v", err)
		}

		got, err := s.GetUserGames(ctx, "u1")
		if err != nil {
			t.Fatalf("GetUserGames: %v", err)
		}
		if len(got) != 2 || got[0].ID != "g1" || got[1].Genre != "shooter" {
			t.Errorf("library round trip: %+v", got)
		}
	})
}

func TestSessionHistoryOrderingAndPaging(t *testing.T) {
	eachBackend(t, func(t *testing.T, s backend) {
		ctx := context.Background()
		base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

		// Insert out of chronological order on purpose.
		for _, i := range []int{2, 0, 4, 1, 3} {
			err := s.AppendSession(ctx, models.GameSession{
				ID:              fmt.Sprintf("s%d", i),
				UserID:          "u1",
				GameID:          fmt.Sprintf("g%d", i%2),
				StartedAt:       base.Add(time.Duration(i) * time.Hour),
				DurationMinutes: 30,
			})
			if err != nil {
				t.Fatalf("AppendSession: %v", err)
			}
		}

		all, err := s.GetGameSessionHistory(ctx, "u1", "", 0, 0)
		if err != nil {
			t.Fatalf("GetGameSessionHistory: %v", err)
		}
		if len(all) != 5 {
			t.Fatalf("sessions = %d, want 5", len(all))
		}
		for i := range all {
			if all[i].ID != fmt.Sprintf("s%d", 4-i) {
				t.Fatalf("order at %d = %s, want newest first", i, all[i].ID)
			}
		}

		// g0 sessions are s0, s2, s4; newest first.
		filtered, err := s.GetGameSessionHistory(ctx, "u1", "g0", 0, 0)
		if err != nil {
			t.Fatalf("filtered history: %v", err)
		}
		if len(filtered) != 3 || filtered[0].ID != "s4" || filtered[2].ID != "s0" {
			t.Errorf("filtered = %+v", sessionIDs(filtered))
		}

		page, err := s.GetGameSessionHistory(ctx, "u1", "", 2, 1)
		if err != nil {
			t.Fatalf("paged history: %v", err)
		}
		if len(page) != 2 || page[0].ID != "s3" || page[1].ID != "s2" {
			t.Errorf("page = %v, want [s3 s2]", sessionIDs(page))
		}

		other, err := s.GetGameSessionHistory(ctx, "stranger", "", 0, 0)
		if err != nil {
			t.Fatalf("stranger history: %v", err)
		}
		if len(other) != 0 {
			t.Errorf("stranger sessions = %d, want 0", len(other))
		}
	})
}

func TestActivities(t *testing.T) {
	eachBackend(t, func(t *testing.T, s backend) {
		ctx := context.Background()

		miss, err := s.GetActivities(ctx, "u1")
		if err != nil {
			t.Fatalf("GetActivities miss: %v", err)
		}
		if len(miss) != 0 {
			t.Fatalf("miss returned %d activities", len(miss))
		}

		in := []models.Activity{
			{Source: "discord", Type: "voice_join", Social: true, Timestamp: time.Now().UTC()},
			{Source: "steam", Type: "achievement", GameID: "g1", Timestamp: time.Now().UTC()},
		}
		if err := s.PutActivities(ctx, "u1", in); err != nil {
			t.Fatalf("PutActivities: %v", err)
		}

		got, err := s.GetActivities(ctx, "u1")
		if err != nil {
			t.Fatalf("GetActivities: %v", err)
		}
		if len(got) != 2 || got[0].Source != "discord" || !got[0].Social {
			t.Errorf("activity round trip: %+v", got)
		}
	})
}

func TestMoodSnapshots(t *testing.T) {
	eachBackend(t, func(t *testing.T, s backend) {
		ctx := context.Background()
		base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

		if _, err := s.LatestMoodSnapshot(ctx, "u1"); !errors.Is(err, mood.ErrNoSnapshot) {
			t.Fatalf("miss error = %v, want ErrNoSnapshot", err)
		}

		for i := 0; i < 3; i++ {
			err := s.SaveMoodSnapshot(ctx, "u1", &mood.AnalysisResult{
				UserID:      "u1",
				Vector:      mood.Vector{Calm: 0.5 + float64(i)*0.1},
				SignalCount: i,
				LastUpdated: base.Add(time.Duration(i) * time.Hour),
			})
			if err != nil {
				t.Fatalf("SaveMoodSnapshot: %v", err)
			}
		}

		latest, err := s.LatestMoodSnapshot(ctx, "u1")
		if err != nil {
			t.Fatalf("LatestMoodSnapshot: %v", err)
		}
		if latest.SignalCount != 2 {
			t.Errorf("latest = %+v, want the last saved snapshot", latest)
		}

		two, err := s.MoodSnapshots(ctx, "u1", 2)
		if err != nil {
			t.Fatalf("MoodSnapshots: %v", err)
		}
		if len(two) != 2 || two[0].SignalCount != 2 || two[1].SignalCount != 1 {
			t.Errorf("snapshots = %d entries, want newest-first pair", len(two))
		}
	})
}

func TestMoodSnapshotPruning(t *testing.T) {
	eachBackend(t, func(t *testing.T, s backend) {
		ctx := context.Background()
		base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

		for i := 0; i < maxStoredSnapshots+10; i++ {
			err := s.SaveMoodSnapshot(ctx, "u1", &mood.AnalysisResult{
				UserID:      "u1",
				SignalCount: i,
				LastUpdated: base.Add(time.Duration(i) * time.Minute),
			})
			if err != nil {
				t.Fatalf("SaveMoodSnapshot %d: %v", i, err)
			}
		}

		all, err := s.MoodSnapshots(ctx, "u1", 0)
		if err != nil {
			t.Fatalf("MoodSnapshots: %v", err)
		}
		if len(all) != maxStoredSnapshots {
			t.Fatalf("stored = %d, want pruned to %d", len(all), maxStoredSnapshots)
		}
		if all[0].SignalCount != maxStoredSnapshots+9 {
			t.Errorf("newest = %d, want the last saved", all[0].SignalCount)
		}
		if all[len(all)-1].SignalCount != 10 {
			t.Errorf("oldest surviving = %d, want 10 after pruning", all[len(all)-1].SignalCount)
		}
	})
}

func sessionIDs(sessions []models.GameSession) []string {
	out := make([]string, len(sessions))
	for i, s := range sessions {
		out[i] = s.ID
	}
	return out
}
