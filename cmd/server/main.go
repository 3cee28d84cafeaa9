// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/playsense/internal/api"
	"github.com/tomtom215/playsense/internal/config"
	"github.com/tomtom215/playsense/internal/logging"
	"github.com/tomtom215/playsense/internal/metrics"
	"github.com/tomtom215/playsense/internal/mood"
	"github.com/tomtom215/playsense/internal/persona"
	"github.com/tomtom215/playsense/internal/recommend"
	"github.com/tomtom215/playsense/internal/store"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server exited with error")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(cfg.Logging)
	logger := logging.Logger()

	logger.Info().
		Str("addr", cfg.Server.Addr()).
		Str("store", cfg.Store.Backend).
		Msg("starting playsense")

	var (
		dataStore     api.DataStore
		personaStore  persona.Store
		snapshotStore mood.SnapshotStore
	)
	switch cfg.Store.Backend {
	case "memory":
		mem := store.NewMemory()
		dataStore, personaStore, snapshotStore = mem, mem, mem
	default:
		bdg, err := store.OpenBadger(cfg.Store.Path, logger)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := bdg.Close(); cerr != nil {
				logger.Error().Err(cerr).Msg("error closing store")
			}
		}()
		dataStore, personaStore, snapshotStore = bdg, bdg, bdg
	}

	personaSvc := persona.NewService(personaStore, logger,
		persona.WithStaleAfter(cfg.Analysis.StaleAfter),
		persona.WithEventObserver(func(kind string) {
			metrics.PersonaEventsTotal.WithLabelValues(kind).Inc()
		}),
		persona.WithRefreshObserver(func(trigger string) {
			metrics.PersonaRefreshesTotal.WithLabelValues(trigger).Inc()
		}),
	)
	analyzer := mood.NewAnalyzer(snapshotStore, cfg.Analysis.SignalBufferCap, logger,
		mood.WithDropObserver(func(count int) {
			metrics.MoodSignalsDropped.Add(float64(count))
		}),
	)

	recommendSvc, err := recommend.NewService(cfg.Recommend, logger)
	if err != nil {
		return err
	}

	server := api.NewServer(cfg.API, dataStore, analyzer, personaSvc, recommendSvc, logger)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logger.Info().Msg("shutdown complete")
	return nil
}
