// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package recommend

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/playsense/internal/models"
	"github.com/tomtom215/playsense/internal/persona"
)

// Service scores candidate games against either a mood forecast or a full
// persona state. It is safe for concurrent use.
type Service struct {
	config Config
	logger zerolog.Logger

	cache   map[string]cacheEntry
	cacheMu sync.RWMutex
}

// cacheEntry holds one cached response.
type cacheEntry struct {
	response  *Response
	expiresAt time.Time
}

// NewService creates a recommendation service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(cfg Config, logger zerolog.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Service{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		cache:  make(map[string]cacheEntry),
	}, nil
}

// MoodBased ranks candidates against a mood forecast. The scoring is a
// pure function of the forecast and the games; no persona is consulted.
// Low forecast confidence pulls every score toward the neutral base.
func (s *Service) MoodBased(ctx context.Context, userID string, forecast Forecast, games []models.Game, limit int) (*Response, error) {
	if forecast.Mood == "" {
		return nil, errors.New("forecast mood is required")
	}

	start := time.Now()
	limit = s.clampLimit(limit)

	variant := forecast.Mood + ":" + strconv.FormatFloat(clamp01f(forecast.Confidence), 'f', -1, 64)
	key := s.cacheKey(userID, ModeMood, variant, games, limit)
	if resp := s.cached(key, start); resp != nil {
		return resp, nil
	}

	items := ScoreByMood(forecast, games)
	sortStable(items)
	if len(items) > limit {
		items = items[:limit]
	}

	resp := s.buildResponse(userID, ModeMood, items, len(games), start)
	s.storeCache(key, resp)

	s.logger.Debug().
		Str("user_id", userID).
		Str("mood", forecast.Mood).
		Int("candidates", len(games)).
		Int("returned", len(items)).
		Msg("mood-based recommendations")

	return resp, nil
}

// PersonaBased ranks candidates against a persona state. Recently played
// games are excluded from the pool unless the options keep them.
func (s *Service) PersonaBased(ctx context.Context, userID string, state *persona.State, games []models.Game, opts Options) (*Response, error) {
	if state == nil {
		return nil, errors.New("persona state is required")
	}

	start := time.Now()
	limit := s.clampLimit(opts.Limit)

	key := s.cacheKey(userID, ModePersona, state.Intent+":"+state.Mood, games, limit)
	if !opts.IncludeRecent {
		if resp := s.cached(key, start); resp != nil {
			return resp, nil
		}
	}

	sctx := s.buildScoringContext(state, opts)
	candidates := filterCandidates(games, sctx)

	items := make([]Scored, 0, len(candidates))
	for _, game := range candidates {
		moodMatch := moodMatchScore(sctx.mood, game)
		intentMatch := intentMatchScore(sctx, game)
		behaviorMatch := behaviorMatchScore(sctx, game)

		weights := s.config.Weights.Normalize()
		score := weights.Mood*moodMatch + weights.Intent*intentMatch + weights.Behavior*behaviorMatch

		items = append(items, Scored{
			Game:          game,
			Score:         score,
			MoodMatch:     moodMatch,
			IntentMatch:   intentMatch,
			BehaviorMatch: behaviorMatch,
			Explanations:  buildExplanations(sctx, game, moodMatch),
		})
	}

	sortStable(items)
	if len(items) > limit {
		items = items[:limit]
	}

	resp := s.buildResponse(userID, ModePersona, items, len(candidates), start)
	if !opts.IncludeRecent {
		s.storeCache(key, resp)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("intent", sctx.intent).
		Str("mood", sctx.mood).
		Int("candidates", len(candidates)).
		Int("returned", len(items)).
		Msg("persona-based recommendations")

	return resp, nil
}

// InvalidateUser drops every cached response for the user. Called after a
// persona update so the next read reflects it.
func (s *Service) InvalidateUser(userID string) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	prefix := userID + ":"
	for key := range s.cache {
		if strings.HasPrefix(key, prefix) {
			delete(s.cache, key)
		}
	}
}

// ScoreByMood is the pure mood-path scoring function. Exported for reuse
// by forecast pipelines and tests.
func ScoreByMood(forecast Forecast, games []models.Game) []Scored {
	confidence := clamp01f(forecast.Confidence)

	items := make([]Scored, 0, len(games))
	for _, game := range games {
		moodMatch := moodMatchScore(forecast.Mood, game)

		// Low confidence pulls toward the neutral base rather than
		// amplifying an uncertain forecast.
		score := confidence*moodMatch + (1-confidence)*matchBase

		var explanations []string
		if moodMatch > explainMoodThreshold {
			explanations = append(explanations, fmt.Sprintf("Fits a %s mood", forecast.Mood))
		}

		items = append(items, Scored{
			Game:         game,
			Score:        score,
			MoodMatch:    moodMatch,
			Explanations: explanations,
		})
	}
	return items
}

// buildScoringContext flattens a persona state into the scoring context.
func (s *Service) buildScoringContext(state *persona.State, opts Options) scoringContext {
	recent := make(map[string]struct{}, len(state.RecentGameIDs))
	for _, id := range state.RecentGameIDs {
		recent[id] = struct{}{}
	}

	var favored []string
	for genre, affinity := range state.GenreAffinities {
		if affinity >= s.config.FavoredGenreThreshold {
			favored = append(favored, genre)
		}
	}
	sort.Strings(favored)

	return scoringContext{
		mood:              state.Mood,
		intent:            state.Intent,
		moodIntensity:     state.MoodIntensity,
		budgetMinutes:     state.PreferredSessionMinutes,
		socialPreference:  state.SocialPreference,
		difficultyPref:    state.DifficultyPreference,
		excludeRecent:     !opts.IncludeRecent,
		recentGameIDs:     recent,
		genreAffinities:   state.GenreAffinities,
		favoredGenres:     favored,
		timeOfDay:         state.TimeOfDay,
		dayOfWeek:         state.DayOfWeek,
		personaConfidence: state.Confidence,
	}
}

// filterCandidates removes recently played games when the context asks
// for it, preserving input order.
func filterCandidates(games []models.Game, sctx scoringContext) []models.Game {
	if !sctx.excludeRecent || len(sctx.recentGameIDs) == 0 {
		return games
	}
	out := make([]models.Game, 0, len(games))
	for _, g := range games {
		if _, recent := sctx.recentGameIDs[g.ID]; !recent {
			out = append(out, g)
		}
	}
	return out
}

// sortStable orders items by score descending; equal scores keep their
// input order so rankings are deterministic.
func sortStable(items []Scored) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 || limit > s.config.MaxRecommendations {
		return s.config.MaxRecommendations
	}
	return limit
}

func (s *Service) buildResponse(userID string, mode Mode, items []Scored, candidates int, start time.Time) *Response {
	return &Response{
		Items:           items,
		TotalCandidates: candidates,
		Metadata: Metadata{
			RequestID: uuid.New().String(),
			UserID:    userID,
			Mode:      mode,
			LatencyMS: time.Since(start).Milliseconds(),
			Timestamp: time.Now().UTC(),
		},
	}
}

// cacheKey identifies one request shape. The candidate digest ties the
// entry to the exact game list, so a request carrying a different library
// never reuses a ranking computed for another one.
func (s *Service) cacheKey(userID string, mode Mode, variant string, games []models.Game, limit int) string {
	h := fnv.New64a()
	for _, g := range games {
		h.Write([]byte(g.ID))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%s:%s:%s:%x:%d", userID, mode, variant, h.Sum64(), limit)
}

// cached returns a copy of a fresh cache entry, or nil.
func (s *Service) cached(key string, start time.Time) *Response {
	if !s.config.CacheEnabled {
		return nil
	}

	s.cacheMu.RLock()
	entry, ok := s.cache[key]
	s.cacheMu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil
	}

	items := make([]Scored, len(entry.response.Items))
	copy(items, entry.response.Items)
	resp := &Response{
		Items:           items,
		TotalCandidates: entry.response.TotalCandidates,
		Metadata:        entry.response.Metadata,
	}
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	return resp
}

func (s *Service) storeCache(key string, resp *Response) {
	if !s.config.CacheEnabled {
		return
	}
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	// Drop expired entries opportunistically instead of tracking an LRU.
	now := time.Now()
	for k, e := range s.cache {
		if now.After(e.expiresAt) {
			delete(s.cache, k)
		}
	}

	s.cache[key] = cacheEntry{
		response:  resp,
		expiresAt: now.Add(s.config.CacheTTL),
	}
}
