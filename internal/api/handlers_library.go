// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomtom215/playsense/internal/models"
	"github.com/tomtom215/playsense/internal/persona"
	"github.com/tomtom215/playsense/internal/validation"
)

// libraryPutRequest replaces a user's game library.
type libraryPutRequest struct {
	Games []models.Game `json:"games" validate:"required,max=10000,dive"`
}

// sessionIngestRequest records one finished play session.
type sessionIngestRequest struct {
	Session models.GameSession `json:"session" validate:"required"`

	// UpdatePersona routes the session through the persona event pipeline
	// after storing it.
	UpdatePersona bool `json:"update_persona"`
}

// activityPutRequest replaces a user's integration activity feed.
type activityPutRequest struct {
	Activities []models.Activity `json:"activities" validate:"required,max=10000,dive"`
}

// handleLibraryGet returns the stored game library.
func (s *Server) handleLibraryGet(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	games, err := s.store.GetUserGames(r.Context(), userID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to load game library", err)
		return
	}

	respondData(w, r, http.StatusOK, games)
}

// handleLibraryPut replaces the stored game library.
func (s *Server) handleLibraryPut(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req libraryPutRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, "invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	if err := s.store.PutUserGames(r.Context(), userID, req.Games); err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to store game library", err)
		return
	}

	s.recommend.InvalidateUser(userID)
	respondData(w, r, http.StatusOK, map[string]int{"stored": len(req.Games)})
}

// handleSessionIngest stores one play session and optionally feeds it
// through the persona update pipeline.
func (s *Server) handleSessionIngest(w http.ResponseWriter, r *http.Request) {
	var req sessionIngestRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, "invalid request body", err)
		return
	}

	sess := req.Session
	if sess.UserID == "" {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, "session.user_id is required", nil)
		return
	}
	if sess.ID == "" {
		sess.ID = uuid.New().String()
	}
	if sess.StartedAt.IsZero() {
		sess.StartedAt = time.Now().UTC()
	}

	ctx := r.Context()
	if err := s.store.AppendSession(ctx, sess); err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to store session", err)
		return
	}

	if req.UpdatePersona {
		if _, err := s.personas.ProcessEvent(ctx, sess.UserID, persona.SessionEvent{Session: sess}); err != nil {
			respondError(w, r, http.StatusInternalServerError, codeInternal, "session stored but persona update failed", err)
			return
		}
		s.recommend.InvalidateUser(sess.UserID)
	}

	respondData(w, r, http.StatusCreated, map[string]string{"session_id": sess.ID})
}

// handleSessionHistory returns stored sessions newest first. The game
// query parameter filters to one game; limit and offset page the result.
func (s *Server) handleSessionHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	gameID := r.URL.Query().Get("game")
	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	sessions, err := s.store.GetGameSessionHistory(r.Context(), userID, gameID, limit, offset)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to load session history", err)
		return
	}

	respondData(w, r, http.StatusOK, sessions)
}

// handleActivityPut replaces the stored integration activity feed.
func (s *Server) handleActivityPut(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req activityPutRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, "invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	if err := s.store.PutActivities(r.Context(), userID, req.Activities); err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to store activity", err)
		return
	}

	respondData(w, r, http.StatusOK, map[string]int{"stored": len(req.Activities)})
}
