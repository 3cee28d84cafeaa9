// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/tomtom215/playsense/internal/logging"
)

// Recovery converts handler panics into 500 responses instead of
// tearing down the connection, logging the stack for diagnosis.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("request_id", GetRequestID(r.Context())).
					Bytes("stack", debug.Stack()).
					Msg("handler panic recovered")

				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
