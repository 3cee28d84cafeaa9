// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package api

import (
	"net/http"

	"github.com/tomtom215/playsense/internal/metrics"
	"github.com/tomtom215/playsense/internal/models"
	"github.com/tomtom215/playsense/internal/recommend"
	"github.com/tomtom215/playsense/internal/validation"
)

// moodRecommendRequest asks for rankings against a mood forecast. When
// Games is empty the stored library is used. A zero confidence with
// UseCurrent set pulls the forecast from the latest stored analysis.
type moodRecommendRequest struct {
	UserID     string        `json:"user_id" validate:"required,max=128"`
	Mood       string        `json:"mood" validate:"omitempty,oneof=calm competitive curious social focused"`
	Confidence float64       `json:"confidence" validate:"min=0,max=1"`
	UseCurrent bool          `json:"use_current"`
	Limit      int           `json:"limit" validate:"min=0,max=100"`
	Games      []models.Game `json:"games" validate:"max=5000,dive"`
}

// personaRecommendRequest asks for rankings against the stored persona.
type personaRecommendRequest struct {
	UserID        string        `json:"user_id" validate:"required,max=128"`
	Limit         int           `json:"limit" validate:"min=0,max=100"`
	IncludeRecent bool          `json:"include_recent"`
	Games         []models.Game `json:"games" validate:"max=5000,dive"`
}

// handleRecommendMood ranks candidates against a mood forecast.
func (s *Server) handleRecommendMood(w http.ResponseWriter, r *http.Request) {
	var req moodRecommendRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, "invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	ctx := r.Context()
	forecast := recommend.Forecast{Mood: req.Mood, Confidence: req.Confidence}

	if req.UseCurrent || req.Mood == "" {
		current, err := s.analyzer.GetCurrentMood(ctx, req.UserID)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to load current mood", err)
			return
		}
		if current == nil {
			respondError(w, r, http.StatusNotFound, codeNotFound, "no mood analysis for user; supply a mood explicitly", nil)
			return
		}
		forecast = recommend.Forecast{
			Mood:       current.Insight.Dominant,
			Vector:     &current.Vector,
			Confidence: current.Confidence,
		}
	}

	games := req.Games
	if len(games) == 0 {
		stored, err := s.store.GetUserGames(ctx, req.UserID)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to load game library", err)
			return
		}
		games = stored
	}

	resp, err := s.recommend.MoodBased(ctx, req.UserID, forecast, games, req.Limit)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, "recommendation failed", err)
		return
	}

	metrics.RecommendationsTotal.WithLabelValues(string(recommend.ModeMood)).Inc()
	if resp.Metadata.CacheHit {
		metrics.RecommendationCacheHits.Inc()
	}

	respondData(w, r, http.StatusOK, resp)
}

// handleRecommendPersona ranks candidates against the stored persona
// state, excluding recently played games unless asked to keep them.
func (s *Server) handleRecommendPersona(w http.ResponseWriter, r *http.Request) {
	var req personaRecommendRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, "invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	ctx := r.Context()
	state, err := s.personas.GetPersonaState(ctx, req.UserID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to load persona state", err)
		return
	}

	games := req.Games
	if len(games) == 0 {
		stored, err := s.store.GetUserGames(ctx, req.UserID)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to load game library", err)
			return
		}
		games = stored
	}

	resp, err := s.recommend.PersonaBased(ctx, req.UserID, state, games, recommend.Options{
		Limit:         req.Limit,
		IncludeRecent: req.IncludeRecent,
	})
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, "recommendation failed", err)
		return
	}

	metrics.RecommendationsTotal.WithLabelValues(string(recommend.ModePersona)).Inc()
	if resp.Metadata.CacheHit {
		metrics.RecommendationCacheHits.Inc()
	}

	respondData(w, r, http.StatusOK, resp)
}
