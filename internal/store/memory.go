// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package store

import (
	"context"
	"sort"
	"sync"

	"github.com/tomtom215/playsense/internal/models"
	"github.com/tomtom215/playsense/internal/mood"
	"github.com/tomtom215/playsense/internal/persona"
)

// Memory is an in-memory implementation of the same interfaces as Badger.
// It backs unit tests and fixtures; deep copies on read and write keep
// callers from aliasing internal state.
type Memory struct {
	mu         sync.RWMutex
	personas   map[string]*persona.UnifiedPersona
	games      map[string][]models.Game
	sessions   map[string][]models.GameSession
	activities map[string][]models.Activity
	snapshots  map[string][]*mood.AnalysisResult
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		personas:   make(map[string]*persona.UnifiedPersona),
		games:      make(map[string][]models.Game),
		sessions:   make(map[string][]models.GameSession),
		activities: make(map[string][]models.Activity),
		snapshots:  make(map[string][]*mood.AnalysisResult),
	}
}

// GetPersona returns the stored persona or persona.ErrPersonaNotFound.
func (m *Memory) GetPersona(ctx context.Context, userID string) (*persona.UnifiedPersona, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.personas[userID]
	if !ok {
		return nil, persona.ErrPersonaNotFound
	}
	cp := *p
	return &cp, nil
}

// CreatePersona stores a new persona record.
func (m *Memory) CreatePersona(ctx context.Context, userID string, p *persona.UnifiedPersona) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.personas[userID] = &cp
	return nil
}

// UpdatePersona overwrites the stored persona record.
func (m *Memory) UpdatePersona(ctx context.Context, userID string, p *persona.UnifiedPersona) error {
	return m.CreatePersona(ctx, userID, p)
}

// DeletePersona removes the persona record.
func (m *Memory) DeletePersona(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.personas, userID)
	return nil
}

// GetUserGames returns a copy of the user's game library.
func (m *Memory) GetUserGames(ctx context.Context, userID string) ([]models.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Game, len(m.games[userID]))
	copy(out, m.games[userID])
	return out, nil
}

// PutUserGames replaces the user's game library.
func (m *Memory) PutUserGames(ctx context.Context, userID string, games []models.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]models.Game, len(games))
	copy(cp, games)
	m.games[userID] = cp
	return nil
}

// AppendSession stores one play session.
func (m *Memory) AppendSession(ctx context.Context, s models.GameSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.UserID] = append(m.sessions[s.UserID], s)
	return nil
}

// GetGameSessionHistory returns sessions newest first, matching the
// Badger implementation's ordering and paging semantics.
func (m *Memory) GetGameSessionHistory(ctx context.Context, userID, gameID string, limit, offset int) ([]models.GameSession, error) {
	m.mu.RLock()
	stored := make([]models.GameSession, len(m.sessions[userID]))
	copy(stored, m.sessions[userID])
	m.mu.RUnlock()

	sort.SliceStable(stored, func(i, j int) bool {
		return stored[i].StartedAt.After(stored[j].StartedAt)
	})

	out := []models.GameSession{}
	skipped := 0
	for _, s := range stored {
		if gameID != "" && s.GameID != gameID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// PutActivities replaces the user's stored integration activity.
func (m *Memory) PutActivities(ctx context.Context, userID string, activities []models.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]models.Activity, len(activities))
	copy(cp, activities)
	m.activities[userID] = cp
	return nil
}

// GetActivities returns a copy of the user's stored integration activity.
func (m *Memory) GetActivities(ctx context.Context, userID string) ([]models.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Activity, len(m.activities[userID]))
	copy(out, m.activities[userID])
	return out, nil
}

// SaveMoodSnapshot stores a mood analysis result, newest first, pruned to
// the same per-user cap as the Badger store.
func (m *Memory) SaveMoodSnapshot(ctx context.Context, userID string, result *mood.AnalysisResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *result
	m.snapshots[userID] = append([]*mood.AnalysisResult{&cp}, m.snapshots[userID]...)
	if len(m.snapshots[userID]) > maxStoredSnapshots {
		m.snapshots[userID] = m.snapshots[userID][:maxStoredSnapshots]
	}
	return nil
}

// LatestMoodSnapshot returns the most recent stored analysis result, or
// mood.ErrNoSnapshot.
func (m *Memory) LatestMoodSnapshot(ctx context.Context, userID string) (*mood.AnalysisResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored := m.snapshots[userID]
	if len(stored) == 0 {
		return nil, mood.ErrNoSnapshot
	}
	cp := *stored[0]
	return &cp, nil
}

// MoodSnapshots returns up to limit stored results, newest first.
func (m *Memory) MoodSnapshots(ctx context.Context, userID string, limit int) ([]*mood.AnalysisResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored := m.snapshots[userID]
	if limit > 0 && len(stored) > limit {
		stored = stored[:limit]
	}
	out := make([]*mood.AnalysisResult, 0, len(stored))
	for _, r := range stored {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}
