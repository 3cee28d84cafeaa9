// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/playsense/internal/config"
	"github.com/tomtom215/playsense/internal/middleware"
	"github.com/tomtom215/playsense/internal/models"
	"github.com/tomtom215/playsense/internal/mood"
	"github.com/tomtom215/playsense/internal/persona"
	"github.com/tomtom215/playsense/internal/recommend"
)

// DataStore is the storage surface the handlers use directly: library and
// history ingestion plus reads the scoring paths need. The persona and
// mood services hold their own narrower store interfaces.
type DataStore interface {
	GetUserGames(ctx context.Context, userID string) ([]models.Game, error)
	PutUserGames(ctx context.Context, userID string, games []models.Game) error
	AppendSession(ctx context.Context, s models.GameSession) error
	GetGameSessionHistory(ctx context.Context, userID, gameID string, limit, offset int) ([]models.GameSession, error)
	PutActivities(ctx context.Context, userID string, activities []models.Activity) error
	GetActivities(ctx context.Context, userID string) ([]models.Activity, error)
}

// Server wires the services to the HTTP surface.
type Server struct {
	cfg       config.APIConfig
	store     DataStore
	analyzer  *mood.Analyzer
	personas  *persona.Service
	recommend *recommend.Service
	logger    zerolog.Logger
}

// NewServer creates the API server.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewServer(cfg config.APIConfig, store DataStore, analyzer *mood.Analyzer, personas *persona.Service, rec *recommend.Service, logger zerolog.Logger) *Server {
	return &Server{
		cfg:       cfg,
		store:     store,
		analyzer:  analyzer,
		personas:  personas,
		recommend: rec,
		logger:    logger.With().Str("component", "api").Logger(),
	}
}

// Router builds the chi router with the full middleware chain and all
// versioned routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(middleware.PrometheusMetrics)

	limiter := middleware.NewRateLimiter(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst)
	r.Use(limiter.Handler)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/mood", func(r chi.Router) {
			r.Post("/analyze", s.handleMoodAnalyze)
			r.Get("/current/{userID}", s.handleMoodCurrent)
			r.Get("/trend/{userID}", s.handleMoodTrend)
		})

		r.Route("/persona/{userID}", func(r chi.Router) {
			r.Get("/", s.handlePersonaGet)
			r.Put("/", s.handlePersonaUpdate)
			r.Get("/state", s.handlePersonaState)
			r.Post("/analyze", s.handlePersonaAnalyze)
			r.Post("/events", s.handlePersonaEvent)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Post("/mood", s.handleRecommendMood)
			r.Post("/persona", s.handleRecommendPersona)
		})

		r.Route("/library/{userID}", func(r chi.Router) {
			r.Get("/", s.handleLibraryGet)
			r.Put("/", s.handleLibraryPut)
		})

		r.Post("/sessions", s.handleSessionIngest)
		r.Get("/sessions/{userID}", s.handleSessionHistory)
		r.Put("/activity/{userID}", s.handleActivityPut)
	})

	return r
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
