// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package persona

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/playsense/internal/models"
)

// ErrPersonaNotFound indicates no persona record exists for the user.
// The storage layer returns it on a miss; GetPersona converts a miss into
// a freshly created default persona.
var ErrPersonaNotFound = errors.New("persona not found")

// DefaultStaleAfter is the staleness window after which a persona read
// triggers a full re-analysis.
const DefaultStaleAfter = 24 * time.Hour

// Store is the persistence façade the persona service depends on.
// Implemented by the storage layer; defined here to avoid import cycles.
type Store interface {
	// GetPersona returns the stored persona or ErrPersonaNotFound.
	GetPersona(ctx context.Context, userID string) (*UnifiedPersona, error)

	// CreatePersona stores a new persona record.
	CreatePersona(ctx context.Context, userID string, p *UnifiedPersona) error

	// UpdatePersona overwrites the stored persona record.
	UpdatePersona(ctx context.Context, userID string, p *UnifiedPersona) error

	// DeletePersona removes the persona record. Deletion is a storage
	// operation; the service itself never calls it.
	DeletePersona(ctx context.Context, userID string) error

	// GetUserGames returns the user's game library.
	GetUserGames(ctx context.Context, userID string) ([]models.Game, error)

	// GetGameSessionHistory returns session history, newest first.
	// Empty gameID means all games; limit <= 0 means no limit.
	GetGameSessionHistory(ctx context.Context, userID, gameID string, limit, offset int) ([]models.GameSession, error)
}

// EventObserver is notified after each processed persona event; used for
// metrics. May be nil.
type EventObserver func(kind string)

// RefreshObserver is notified after each successful full re-analysis with
// the trigger that caused it ("stale" on read, "explicit" on request).
// May be nil.
type RefreshObserver func(trigger string)

// Service owns the per-user persona lifecycle: creation on first access,
// incremental event updates, staleness-triggered full analysis, and the
// flattened state projection for recommendation scoring.
//
// The service performs at most one consistent write per call and no
// retries. Two concurrent updates for the same user race last-write-wins;
// callers needing strict ordering must serialize per user externally.
type Service struct {
	store      Store
	logger     zerolog.Logger
	staleAfter time.Duration
	observer   EventObserver
	refreshed  RefreshObserver
	now        func() time.Time
}

// Option configures the service.
type Option func(*Service)

// WithStaleAfter overrides the staleness window.
func WithStaleAfter(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.staleAfter = d
		}
	}
}

// WithEventObserver registers a callback invoked per processed event kind.
func WithEventObserver(fn EventObserver) Option {
	return func(s *Service) { s.observer = fn }
}

// WithRefreshObserver registers a callback invoked per completed
// re-analysis.
func WithRefreshObserver(fn RefreshObserver) Option {
	return func(s *Service) { s.refreshed = fn }
}

// WithClock overrides the time source; tests use it for determinism.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a persona service on top of the given store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(store Store, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		store:      store,
		logger:     logger.With().Str("component", "persona").Logger(),
		staleAfter: DefaultStaleAfter,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetPersona returns the user's persona, creating a default low-confidence
// persona on first access and refreshing it with a full analysis when the
// last analysis is older than the staleness window. A failed refresh is
// logged and the stored persona returned; a failed read or create is
// returned to the caller.
func (s *Service) GetPersona(ctx context.Context, userID string) (*UnifiedPersona, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}

	p, err := s.store.GetPersona(ctx, userID)
	if errors.Is(err, ErrPersonaNotFound) {
		return s.createDefault(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("get persona: %w", err)
	}

	if s.isStale(p) {
		refreshed, aerr := s.AnalyzePersona(ctx, userID)
		if aerr != nil {
			s.logger.Warn().Err(aerr).Str("user_id", userID).Msg("stale persona refresh failed, serving stored persona")
			return p, nil
		}
		if s.refreshed != nil {
			s.refreshed("stale")
		}
		return refreshed, nil
	}

	return p, nil
}

// UpdatePersona applies a partial update atomically to an in-memory copy,
// recomputes derived fields, and persists the whole persona. The persist
// failure is wrapped and returned; an update must never silently fail.
func (s *Service) UpdatePersona(ctx context.Context, userID string, update Update) (*UnifiedPersona, error) {
	p, err := s.GetPersona(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := *p
	if update.Mood != nil {
		next = applyMood(next, *update.Mood)
		s.observe("mood")
	}
	if update.Intent != nil {
		next = applyIntent(next, *update.Intent)
		s.observe("intent")
	}
	if update.Behavior != nil {
		next = applyBehavior(next, *update.Behavior)
		s.observe("behavior")
	}
	if update.Event != nil {
		next = applyEvent(next, update.Event)
		s.observe(update.Event.Kind())
	}
	next = recomputeDerived(next, s.now())

	if err := s.store.UpdatePersona(ctx, userID, &next); err != nil {
		return nil, fmt.Errorf("persist persona update: %w", err)
	}

	return &next, nil
}

// ProcessEvent applies a single persona event. Unknown variants are a
// no-op, not an error; the persona is still persisted with a fresh
// UpdatedAt so callers can observe the write.
func (s *Service) ProcessEvent(ctx context.Context, userID string, ev Event) (*UnifiedPersona, error) {
	return s.UpdatePersona(ctx, userID, Update{Event: ev})
}

// GetPersonaState projects the persona into the flattened scoring state.
// Pure read; never mutates or persists.
func (s *Service) GetPersonaState(ctx context.Context, userID string) (*State, error) {
	p, err := s.GetPersona(ctx, userID)
	if err != nil {
		return nil, err
	}
	state := BuildState(p, s.now(), s.staleAfter)
	return &state, nil
}

// createDefault builds, persists, and returns the default persona.
func (s *Service) createDefault(ctx context.Context, userID string) (*UnifiedPersona, error) {
	now := s.now()
	p := defaultPersona(userID, now)
	if err := s.store.CreatePersona(ctx, userID, &p); err != nil {
		return nil, fmt.Errorf("create default persona: %w", err)
	}
	s.logger.Info().Str("user_id", userID).Msg("created default persona")
	return &p, nil
}

// defaultPersona is the low-confidence persona assigned on first access.
func defaultPersona(userID string, now time.Time) UnifiedPersona {
	return UnifiedPersona{
		UserID: userID,
		Traits: Traits{
			Archetype:   ArchetypeCasual,
			Intensity:   "moderate",
			Pacing:      "balanced",
			Risk:        "balanced",
			SocialStyle: "flexible",
			Discovery:   "mixed",
		},
		CurrentMood:   "calm",
		CurrentIntent: IntentExplore,
		MoodIntensity: 5,
		Confidence:    0,
		DataPoints:    0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// isStale reports whether the persona needs a full re-analysis.
func (s *Service) isStale(p *UnifiedPersona) bool {
	if p.LastAnalysisDate.IsZero() {
		// Never analyzed; a read should not loop into analysis until the
		// user actually has data, so zero is not treated as stale here.
		return false
	}
	return s.now().Sub(p.LastAnalysisDate) > s.staleAfter
}

func (s *Service) observe(kind string) {
	if s.observer != nil {
		s.observer(kind)
	}
}

// BuildState projects a persona into the flattened recommendation state.
// Pure function of its inputs.
func BuildState(p *UnifiedPersona, now time.Time, staleAfter time.Duration) State {
	prefMinutes := p.Patterns.SessionStats.AvgDurationMinutes
	if prefMinutes <= 0 {
		prefMinutes = 45
	}

	recent := make([]string, 0, len(p.Patterns.RecentGames))
	// RecentGames is newest last; the state lists newest first.
	for i := len(p.Patterns.RecentGames) - 1; i >= 0; i-- {
		recent = append(recent, p.Patterns.RecentGames[i].GameID)
	}

	affinities := make(map[string]float64, len(p.Patterns.GenreAffinities))
	for genre, v := range p.Patterns.GenreAffinities {
		affinities[genre] = clamp01(v)
	}

	stale := false
	if !p.LastAnalysisDate.IsZero() && staleAfter > 0 {
		stale = now.Sub(p.LastAnalysisDate) > staleAfter
	}

	return State{
		UserID:                  p.UserID,
		Archetype:               p.Traits.Archetype,
		Mood:                    p.CurrentMood,
		Intent:                  p.CurrentIntent,
		MoodIntensity:           clampIntensity(p.MoodIntensity),
		PreferredSessionMinutes: prefMinutes,
		DifficultyPreference:    difficultyPreference(p.Traits),
		SocialPreference:        socialPreference(p.Traits),
		GenreAffinities:         affinities,
		TimeOfDay:               now.Hour(),
		DayOfWeek:               now.Weekday(),
		RecentGameIDs:           recent,
		Confidence:              p.Confidence,
		AnalyzedAt:              p.LastAnalysisDate,
		Stale:                   stale,
	}
}

// difficultyPreference maps categorical risk and intensity traits to a
// numeric [0,1] preference.
func difficultyPreference(t Traits) float64 {
	risk := map[string]float64{"cautious": 0.25, "balanced": 0.5, "daring": 0.85}[t.Risk]
	if risk == 0 {
		risk = 0.5
	}
	intensity := map[string]float64{"relaxed": 0.25, "moderate": 0.5, "intense": 0.85}[t.Intensity]
	if intensity == 0 {
		intensity = 0.5
	}
	return clamp01(0.6*risk + 0.4*intensity)
}

// socialPreference maps the social style trait to a numeric [0,1]
// preference.
func socialPreference(t Traits) float64 {
	base := map[string]float64{"solo": 0.2, "flexible": 0.5, "group": 0.85}[t.SocialStyle]
	if base == 0 {
		base = 0.5
	}
	return clamp01(base)
}
