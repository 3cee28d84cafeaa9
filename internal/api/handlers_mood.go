// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/playsense/internal/metrics"
	"github.com/tomtom215/playsense/internal/models"
	"github.com/tomtom215/playsense/internal/validation"
)

// moodAnalyzeRequest carries the history for one analysis pass. Sessions
// may be omitted to analyze from the stored history instead.
type moodAnalyzeRequest struct {
	UserID     string               `json:"user_id" validate:"required,max=128"`
	Sessions   []models.GameSession `json:"sessions" validate:"max=5000,dive"`
	Games      []models.Game        `json:"games" validate:"max=5000,dive"`
	Activities []models.Activity    `json:"activities" validate:"max=5000,dive"`
}

// handleMoodAnalyze runs a full mood analysis over the supplied history,
// falling back to stored history when the request carries none.
func (s *Server) handleMoodAnalyze(w http.ResponseWriter, r *http.Request) {
	var req moodAnalyzeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, "invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	ctx := r.Context()
	if len(req.Sessions) == 0 {
		stored, err := s.store.GetGameSessionHistory(ctx, req.UserID, "", 0, 0)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to load session history", err)
			return
		}
		req.Sessions = stored
	}
	if len(req.Games) == 0 {
		games, err := s.store.GetUserGames(ctx, req.UserID)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to load game library", err)
			return
		}
		req.Games = games
	}
	if len(req.Activities) == 0 {
		activities, err := s.store.GetActivities(ctx, req.UserID)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to load activity", err)
			return
		}
		req.Activities = activities
	}

	start := time.Now()
	result, err := s.analyzer.AnalyzeUserMood(ctx, req.UserID, req.Sessions, req.Games, req.Activities)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, "mood analysis failed", err)
		return
	}
	metrics.RecordMoodAnalysis(result.Insight.Dominant, time.Since(start))

	respondData(w, r, http.StatusOK, result)
}

// handleMoodCurrent returns the latest stored analysis for a user.
func (s *Server) handleMoodCurrent(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	result, err := s.analyzer.GetCurrentMood(r.Context(), userID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to load mood", err)
		return
	}
	if result == nil {
		respondError(w, r, http.StatusNotFound, codeNotFound, "no mood analysis for user", nil)
		return
	}

	respondData(w, r, http.StatusOK, result)
}

// handleMoodTrend summarizes recent snapshots. The window query parameter
// bounds how many snapshots are averaged.
func (s *Server) handleMoodTrend(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	window := queryInt(r, "window", 10)

	trend, err := s.analyzer.MoodTrend(r.Context(), userID, window)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to compute trend", err)
		return
	}
	if trend == nil {
		respondError(w, r, http.StatusNotFound, codeNotFound, "no mood history for user", nil)
		return
	}

	respondData(w, r, http.StatusOK, trend)
}
