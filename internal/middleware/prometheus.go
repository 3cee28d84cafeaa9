// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/playsense/internal/metrics"
)

// PrometheusMetrics records request count, latency, and in-flight gauge
// for every request. The endpoint label uses the chi route pattern so
// path parameters do not explode label cardinality.
func PrometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.APIActiveRequests.Inc()
		defer metrics.APIActiveRequests.Dec()

		start := time.Now()
		wrapper := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		endpoint := chi.RouteContext(r.Context()).RoutePattern()
		if endpoint == "" {
			endpoint = r.URL.Path
		}
		metrics.RecordAPIRequest(r.Method, endpoint, wrapper.statusCode, time.Since(start))
	})
}

// statusResponseWriter wraps http.ResponseWriter to capture the status.
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
