// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/playsense/internal/metrics"
	"github.com/tomtom215/playsense/internal/models"
	"github.com/tomtom215/playsense/internal/persona"
	"github.com/tomtom215/playsense/internal/validation"
)

// personaUpdateRequest is a partial persona update. Absent sections are
// skipped.
type personaUpdateRequest struct {
	Mood     *persona.MoodEvent     `json:"mood,omitempty"`
	Intent   *persona.IntentEvent   `json:"intent,omitempty"`
	Behavior *persona.BehaviorEvent `json:"behavior,omitempty"`
}

// personaEventRequest is one tagged persona event. Exactly the section
// matching Kind is read.
type personaEventRequest struct {
	Kind        string                    `json:"kind" validate:"required,oneof=mood intent behavior session achievement"`
	Mood        *persona.MoodEvent        `json:"mood,omitempty"`
	Intent      *persona.IntentEvent      `json:"intent,omitempty"`
	Behavior    *persona.BehaviorEvent    `json:"behavior,omitempty"`
	Session     *models.GameSession       `json:"session,omitempty"`
	Achievement *persona.AchievementEvent `json:"achievement,omitempty"`
}

// handlePersonaGet returns the unified persona, creating a default on
// first sight and re-analyzing a stale one.
func (s *Server) handlePersonaGet(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	p, err := s.personas.GetPersona(r.Context(), userID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to load persona", err)
		return
	}

	respondData(w, r, http.StatusOK, p)
}

// handlePersonaUpdate applies a partial update and returns the new
// persona snapshot. The recommendation cache for the user is invalidated
// so the next read reflects the change.
func (s *Server) handlePersonaUpdate(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req personaUpdateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, "invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	p, err := s.personas.UpdatePersona(r.Context(), userID, persona.Update{
		Mood:     req.Mood,
		Intent:   req.Intent,
		Behavior: req.Behavior,
	})
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to update persona", err)
		return
	}

	s.recommend.InvalidateUser(userID)
	respondData(w, r, http.StatusOK, p)
}

// handlePersonaState returns the flattened scoring projection.
func (s *Server) handlePersonaState(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	state, err := s.personas.GetPersonaState(r.Context(), userID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to load persona state", err)
		return
	}

	respondData(w, r, http.StatusOK, state)
}

// handlePersonaAnalyze forces a full re-analysis from stored history.
func (s *Server) handlePersonaAnalyze(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	p, err := s.personas.AnalyzePersona(r.Context(), userID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, "persona analysis failed", err)
		return
	}
	metrics.PersonaRefreshesTotal.WithLabelValues("explicit").Inc()

	s.recommend.InvalidateUser(userID)
	respondData(w, r, http.StatusOK, p)
}

// handlePersonaEvent processes one tagged event through the persona
// update pipeline.
func (s *Server) handlePersonaEvent(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req personaEventRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, "invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	ev, err := req.event()
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, err.Error(), nil)
		return
	}

	p, err := s.personas.ProcessEvent(r.Context(), userID, ev)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, codeInternal, "failed to process event", err)
		return
	}

	s.recommend.InvalidateUser(userID)
	respondData(w, r, http.StatusOK, p)
}

// event resolves the tagged request to a concrete persona event.
func (req *personaEventRequest) event() (persona.Event, error) {
	switch req.Kind {
	case "mood":
		if req.Mood == nil {
			return nil, errors.New("mood section is required for kind=mood")
		}
		return *req.Mood, nil
	case "intent":
		if req.Intent == nil {
			return nil, errors.New("intent section is required for kind=intent")
		}
		return *req.Intent, nil
	case "behavior":
		if req.Behavior == nil {
			return nil, errors.New("behavior section is required for kind=behavior")
		}
		return *req.Behavior, nil
	case "session":
		if req.Session == nil {
			return nil, errors.New("session section is required for kind=session")
		}
		return persona.SessionEvent{Session: *req.Session}, nil
	case "achievement":
		if req.Achievement == nil {
			return nil, errors.New("achievement section is required for kind=achievement")
		}
		return *req.Achievement, nil
	default:
		return nil, errors.New("unknown event kind")
	}
}
