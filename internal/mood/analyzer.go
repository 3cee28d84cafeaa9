// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package mood

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/playsense/internal/feature"
	"github.com/tomtom215/playsense/internal/models"
	"github.com/tomtom215/playsense/internal/signal"
)

// ErrNoSnapshot indicates no stored mood analysis exists for the user.
var ErrNoSnapshot = errors.New("no mood snapshot for user")

// SnapshotStore persists mood analysis results so the latest reading
// survives restarts. Implemented by the storage layer; the interface lives
// here to avoid a dependency cycle.
type SnapshotStore interface {
	// SaveMoodSnapshot stores an analysis result for a user.
	SaveMoodSnapshot(ctx context.Context, userID string, result *AnalysisResult) error

	// LatestMoodSnapshot returns the most recent stored result, or
	// ErrNoSnapshot when none exists.
	LatestMoodSnapshot(ctx context.Context, userID string) (*AnalysisResult, error)

	// MoodSnapshots returns up to limit stored results, newest first.
	MoodSnapshots(ctx context.Context, userID string, limit int) ([]*AnalysisResult, error)
}

// Analyzer runs the signal -> feature -> mood pipeline for one user at a
// time and keeps the latest result in the snapshot store.
type Analyzer struct {
	store     SnapshotStore
	extractor *feature.Extractor
	logger    zerolog.Logger
	bufferCap int
	dropped   DropObserver
}

// DropObserver is notified with the number of signals the collector
// evicted during an analysis pass; used for metrics. May be nil.
type DropObserver func(count int)

// Option configures the analyzer.
type Option func(*Analyzer)

// WithDropObserver registers a callback invoked when an analysis pass
// overflows the signal buffer.
func WithDropObserver(fn DropObserver) Option {
	return func(a *Analyzer) { a.dropped = fn }
}

// NewAnalyzer creates a mood analyzer backed by the given snapshot store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAnalyzer(store SnapshotStore, bufferCap int, logger zerolog.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		store:     store,
		extractor: feature.NewExtractor(logger),
		logger:    logger.With().Str("component", "mood").Logger(),
		bufferCap: bufferCap,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeUserMood runs one full analysis pass over the supplied history.
// Sessions missing genre or platform metadata are enriched from the game
// list before signal collection. The result is stored opportunistically;
// a snapshot-store failure is logged but does not fail the analysis, since
// the caller already holds the computed result.
func (a *Analyzer) AnalyzeUserMood(ctx context.Context, userID string, sessions []models.GameSession, games []models.Game, activities []models.Activity) (*AnalysisResult, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}

	sessions = enrichSessions(sessions, games)

	collector := signal.NewCollector(a.bufferCap, a.logger)
	collector.CollectSessions(sessions)
	collector.CollectGenreTransitions(signal.DeriveGenreTransitions(sessions))
	collector.CollectPlaytime(signal.DerivePlaytimeSeries(sessions))
	collector.CollectPlatformSwitches(signal.DerivePlatformSwitches(sessions))
	collector.CollectActivities(activities)

	signals := collector.Signals()
	if d := collector.Stats().Dropped; d > 0 && a.dropped != nil {
		a.dropped(d)
	}
	features := a.extractor.Extract(signals)

	if v := a.extractor.Validate(features); len(v.Issues) > 0 {
		a.logger.Warn().
			Str("user_id", userID).
			Strs("issues", v.Issues).
			Msg("feature validation raised warnings")
	}

	vector := Infer(features)
	result := &AnalysisResult{
		UserID:      userID,
		Vector:      vector,
		Confidence:  Confidence(len(signals), features),
		SignalCount: len(signals),
		LastUpdated: time.Now().UTC(),
		Features:    features,
		Insight:     BuildInsight(vector),
	}

	if err := a.store.SaveMoodSnapshot(ctx, userID, result); err != nil {
		a.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to store mood snapshot")
	}

	a.logger.Info().
		Str("user_id", userID).
		Str("dominant", result.Insight.Dominant).
		Float64("confidence", result.Confidence).
		Int("signals", result.SignalCount).
		Msg("mood analysis complete")

	return result, nil
}

// GetCurrentMood returns the latest stored analysis for the user, or
// (nil, nil) when the user has no analysis yet. Store failures other than
// a miss are returned to the caller.
func (a *Analyzer) GetCurrentMood(ctx context.Context, userID string) (*AnalysisResult, error) {
	result, err := a.store.LatestMoodSnapshot(ctx, userID)
	if errors.Is(err, ErrNoSnapshot) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest mood snapshot: %w", err)
	}
	return result, nil
}

// MoodTrend summarizes up to limit stored snapshots for the user.
// Returns (nil, nil) when fewer than one snapshot exists.
func (a *Analyzer) MoodTrend(ctx context.Context, userID string, limit int) (*Trend, error) {
	if limit <= 0 {
		limit = 10
	}

	snapshots, err := a.store.MoodSnapshots(ctx, userID, limit)
	if err != nil && !errors.Is(err, ErrNoSnapshot) {
		return nil, fmt.Errorf("mood snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		return nil, nil
	}

	var avg Vector
	for _, s := range snapshots {
		avg.Calm += s.Vector.Calm
		avg.Competitive += s.Vector.Competitive
		avg.Curious += s.Vector.Curious
		avg.Social += s.Vector.Social
		avg.Focused += s.Vector.Focused
	}
	n := float64(len(snapshots))
	avg = Vector{
		Calm:        avg.Calm / n,
		Competitive: avg.Competitive / n,
		Curious:     avg.Curious / n,
		Social:      avg.Social / n,
		Focused:     avg.Focused / n,
	}

	dominant, _ := DominantMood(avg)

	// Snapshots are newest first.
	newest := snapshots[0].Vector.Dimension(dominant)
	oldest := snapshots[len(snapshots)-1].Vector.Dimension(dominant)
	direction := "steady"
	const deadband = 0.05
	switch {
	case newest-oldest > deadband:
		direction = "rising"
	case oldest-newest > deadband:
		direction = "falling"
	}

	return &Trend{
		Samples:   len(snapshots),
		Average:   avg,
		Dominant:  dominant,
		Direction: direction,
	}, nil
}

// enrichSessions fills missing session genre/platform from game metadata.
func enrichSessions(sessions []models.GameSession, games []models.Game) []models.GameSession {
	if len(games) == 0 {
		return sessions
	}

	byID := make(map[string]models.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}

	out := make([]models.GameSession, len(sessions))
	copy(out, sessions)
	for i := range out {
		g, ok := byID[out[i].GameID]
		if !ok {
			continue
		}
		if out[i].Genre == "" {
			out[i].Genre = g.Genre
		}
		if out[i].Platform == "" {
			out[i].Platform = g.Platform
		}
	}
	return out
}
