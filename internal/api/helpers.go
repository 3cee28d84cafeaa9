// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/playsense/internal/logging"
	"github.com/tomtom215/playsense/internal/middleware"
	"github.com/tomtom215/playsense/internal/models"
	"github.com/tomtom215/playsense/internal/validation"
)

// Error codes used in API error responses.
const (
	codeValidation = "VALIDATION_ERROR"
	codeBadRequest = "BAD_REQUEST"
	codeNotFound   = "NOT_FOUND"
	codeInternal   = "INTERNAL_ERROR"
)

// respondJSON writes the response envelope.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("failed to write JSON response")
	}
}

// respondData wraps data in a success envelope.
func respondData(w http.ResponseWriter, r *http.Request, status int, data any) {
	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: middleware.GetRequestID(r.Context()),
		},
	})
}

// respondError writes an error envelope. err is logged, never exposed.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		logging.Error().
			Str("code", code).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Err(err).
			Msg("api error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: middleware.GetRequestID(r.Context()),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// respondValidationError writes a 400 with per-field details.
func respondValidationError(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	fields := verr.Fields()
	details := make(map[string]any, 1)
	if len(fields) > 0 {
		details["fields"] = fields
	}

	respondJSON(w, http.StatusBadRequest, &models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: middleware.GetRequestID(r.Context()),
		},
		Error: &models.APIError{
			Code:    codeValidation,
			Message: verr.Error(),
			Details: details,
		},
	})
}

// decodeJSON decodes a bounded request body into dst, rejecting unknown
// fields so client typos fail loudly.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// queryInt reads an integer query parameter with a default.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
