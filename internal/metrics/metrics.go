// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Mood Analysis Metrics
	MoodAnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mood_analyses_total",
			Help: "Total number of mood analyses, labeled by dominant mood",
		},
		[]string{"mood"},
	)

	MoodAnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mood_analysis_duration_seconds",
			Help:    "Mood analysis pipeline duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	MoodSignalsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mood_signals_dropped_total",
			Help: "Behavioral signals dropped by the bounded collector buffer",
		},
	)

	// Persona Metrics
	PersonaEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persona_events_total",
			Help: "Total number of persona update events processed, by kind",
		},
		[]string{"kind"},
	)

	PersonaRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persona_refreshes_total",
			Help: "Total number of full persona re-analyses, by trigger",
		},
		[]string{"trigger"}, // "stale" or "explicit"
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests, by mode",
		},
		[]string{"mode"},
	)

	RecommendationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordMoodAnalysis records one completed mood analysis.
func RecordMoodAnalysis(dominantMood string, duration time.Duration) {
	MoodAnalysesTotal.WithLabelValues(dominantMood).Inc()
	MoodAnalysisDuration.Observe(duration.Seconds())
}
