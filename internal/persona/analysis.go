// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package persona

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/playsense/internal/models"
)

// Threshold rules for categorical trait derivation. Scores are in [0,1].
const (
	traitHighThreshold = 0.6
	traitMidThreshold  = 0.3

	marathonMinutes   = 90.0
	shortBurstMinutes = 30.0
)

// Mood-signal thresholds for the analysis heuristics.
const (
	shiftySessionRatio = 0.5 // genre-shift ratio above which the user reads as curious
	socialSessionRatio = 0.5
	intenseRatio       = 0.5
	shortAvgMinutes    = 30.0
	spikeRatioCap      = 3.0
)

// archetypePriority fixes tie-breaking for the archetype argmax.
var archetypePriority = []string{
	ArchetypeExplorer,
	ArchetypeAchiever,
	ArchetypeSocializer,
	ArchetypeCompetitor,
	ArchetypeCasual,
}

// archetypeScores holds the five named scores the archetype argmax runs on.
type archetypeScores struct {
	explorer   float64
	achiever   float64
	socializer float64
	competitor float64
	casual     float64
}

func (a archetypeScores) value(name string) float64 {
	switch name {
	case ArchetypeExplorer:
		return a.explorer
	case ArchetypeAchiever:
		return a.achiever
	case ArchetypeSocializer:
		return a.socializer
	case ArchetypeCompetitor:
		return a.competitor
	case ArchetypeCasual:
		return a.casual
	default:
		return 0
	}
}

// moodSignals are the derived aggregates the mood/intent heuristics key on.
type moodSignals struct {
	avgDurationMinutes float64
	spikeRatio         float64 // max daily playtime / mean daily playtime
	genreShiftRatio    float64 // genre changes / session transitions
	socialRatio        float64
	highIntensityRatio float64
}

// AnalyzePersona recomputes the persona wholesale from the user's raw
// gaming data: archetype scores and categorical traits, mood and intent
// heuristics, behavioral patterns, and the confidence saturation curve.
// The result is persisted before being returned; a persistence failure is
// the caller's error, never a silent drop.
func (s *Service) AnalyzePersona(ctx context.Context, userID string) (*UnifiedPersona, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	games, err := s.store.GetUserGames(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user games: %w", err)
	}
	sessions, err := s.store.GetGameSessionHistory(ctx, userID, "", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("get session history: %w", err)
	}

	now := s.now()

	current, err := s.store.GetPersona(ctx, userID)
	var next UnifiedPersona
	var created bool
	switch {
	case err == nil:
		next = *current
	case errors.Is(err, ErrPersonaNotFound):
		next = defaultPersona(userID, now)
		created = true
	default:
		return nil, fmt.Errorf("get persona: %w", err)
	}

	scores := deriveArchetypeScores(sessions, games)
	signals := deriveMoodSignals(sessions)

	next.Traits = deriveTraits(scores, signals)
	next.CurrentMood, next.CurrentIntent = inferMoodAndIntent(signals)
	next.MoodIntensity = inferMoodIntensity(signals)
	next.Patterns = extractPatterns(sessions)
	next.History.Traits = pushBounded(next.History.Traits, TraitEntry{
		Archetype: next.Traits.Archetype,
		At:        now,
	}, MaxTraitHistory)

	next.DataPoints = len(sessions)
	next.LastAnalysisDate = now
	next = recomputeDerived(next, now)

	if created {
		err = s.store.CreatePersona(ctx, userID, &next)
	} else {
		err = s.store.UpdatePersona(ctx, userID, &next)
	}
	if err != nil {
		return nil, fmt.Errorf("persist analyzed persona: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("archetype", next.Traits.Archetype).
		Str("mood", next.CurrentMood).
		Str("intent", next.CurrentIntent).
		Int("data_points", next.DataPoints).
		Float64("confidence", next.Confidence).
		Msg("persona analysis complete")

	return &next, nil
}

// deriveArchetypeScores computes the five named scores from raw history.
func deriveArchetypeScores(sessions []models.GameSession, games []models.Game) archetypeScores {
	if len(sessions) == 0 {
		return archetypeScores{casual: 0.5}
	}

	total := float64(len(sessions))
	genres := make(map[string]struct{})
	platforms := make(map[string]struct{})
	var completed, social, highIntensity, lowIntensity, short, main float64
	for _, s := range sessions {
		if s.Genre != "" {
			genres[strings.ToLower(s.Genre)] = struct{}{}
		}
		if s.Platform != "" {
			platforms[strings.ToLower(s.Platform)] = struct{}{}
		}
		if s.Completed {
			completed++
		}
		if s.Social {
			social++
		}
		if s.Intensity == models.IntensityHigh {
			highIntensity++
		}
		if s.Intensity == models.IntensityLow {
			lowIntensity++
		}
		if s.DurationMinutes < shortBurstMinutes {
			short++
		}
		if s.Kind == models.SessionMain {
			main++
		}
	}

	libraryGenres := 1.0
	if len(games) > 0 {
		seen := make(map[string]struct{})
		for _, g := range games {
			if g.Genre != "" {
				seen[strings.ToLower(g.Genre)] = struct{}{}
			}
		}
		if len(seen) > 0 {
			libraryGenres = float64(len(seen))
		}
	}

	return archetypeScores{
		explorer:   clamp01(0.7*(float64(len(genres))/libraryGenres) + 0.3*clamp01(float64(len(platforms))/3)),
		achiever:   clamp01(0.7*(completed/total) + 0.3*(main/total)),
		socializer: clamp01(social / total),
		competitor: clamp01(0.7*(highIntensity/total) + 0.3*(completed/total)),
		casual:     clamp01(0.6*(short/total) + 0.4*(lowIntensity/total)),
	}
}

// deriveMoodSignals computes the aggregates the mood/intent heuristics use.
func deriveMoodSignals(sessions []models.GameSession) moodSignals {
	if len(sessions) == 0 {
		return moodSignals{}
	}

	total := float64(len(sessions))
	var durationSum, social, high float64
	daily := make(map[time.Time]float64)
	for _, s := range sessions {
		durationSum += s.DurationMinutes
		if s.Social {
			social++
		}
		if s.Intensity == models.IntensityHigh {
			high++
		}
		daily[s.StartedAt.UTC().Truncate(24*time.Hour)] += s.DurationMinutes
	}

	var dailySum, dailyMax float64
	for _, m := range daily {
		dailySum += m
		if m > dailyMax {
			dailyMax = m
		}
	}
	spike := 1.0
	if len(daily) > 0 && dailySum > 0 {
		mean := dailySum / float64(len(daily))
		spike = dailyMax / mean
	}

	var shifts, transitions float64
	ordered := make([]models.GameSession, len(sessions))
	copy(ordered, sessions)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].StartedAt.Before(ordered[j].StartedAt) })
	var prevGenre string
	for _, s := range ordered {
		if s.Genre == "" {
			continue
		}
		if prevGenre != "" {
			transitions++
			if !strings.EqualFold(prevGenre, s.Genre) {
				shifts++
			}
		}
		prevGenre = s.Genre
	}
	shiftRatio := 0.0
	if transitions > 0 {
		shiftRatio = shifts / transitions
	}

	return moodSignals{
		avgDurationMinutes: durationSum / total,
		spikeRatio:         spike,
		genreShiftRatio:    shiftRatio,
		socialRatio:        social / total,
		highIntensityRatio: high / total,
	}
}

// deriveTraits applies the threshold rules over the archetype scores.
func deriveTraits(scores archetypeScores, signals moodSignals) Traits {
	archetype := archetypePriority[0]
	best := scores.value(archetype)
	for _, name := range archetypePriority[1:] {
		if v := scores.value(name); v > best {
			archetype, best = name, v
		}
	}

	return Traits{
		Archetype:   archetype,
		Intensity:   bucket(scores.competitor, "relaxed", "moderate", "intense"),
		Pacing:      pacing(signals.avgDurationMinutes),
		Risk:        bucket((scores.competitor+scores.explorer)/2, "cautious", "balanced", "daring"),
		SocialStyle: bucket(scores.socializer, "solo", "flexible", "group"),
		Discovery:   bucket(scores.explorer, "familiar", "mixed", "novel"),
	}
}

// bucket maps a [0,1] score to a categorical label by the fixed thresholds.
func bucket(score float64, low, mid, high string) string {
	switch {
	case score > traitHighThreshold:
		return high
	case score > traitMidThreshold:
		return mid
	default:
		return low
	}
}

// pacing maps average session length to its categorical label.
func pacing(avgMinutes float64) string {
	switch {
	case avgMinutes >= marathonMinutes:
		return "marathon"
	case avgMinutes >= shortBurstMinutes:
		return "balanced"
	default:
		return "short-burst"
	}
}

// inferMoodAndIntent applies the threshold heuristics over mood signals.
// Rules are checked in a fixed order; the first match wins.
func inferMoodAndIntent(sig moodSignals) (mood, intent string) {
	switch {
	case sig.genreShiftRatio > shiftySessionRatio:
		return "curious", IntentExplore
	case sig.socialRatio > socialSessionRatio:
		return "social", IntentSocial
	case sig.highIntensityRatio > intenseRatio:
		return "competitive", IntentChallenge
	case sig.avgDurationMinutes > 0 && sig.avgDurationMinutes < shortAvgMinutes:
		return "calm", IntentShortSession
	default:
		return "focused", IntentProgress
	}
}

// inferMoodIntensity maps intensity evidence onto the [1,10] scale.
func inferMoodIntensity(sig moodSignals) int {
	spike := clamp01((sig.spikeRatio - 1) / (spikeRatioCap - 1))
	blend := 0.6*sig.highIntensityRatio + 0.4*spike
	return clampIntensity(1 + int(blend*9+0.5))
}

// extractPatterns computes the behavioral patterns from raw sessions.
func extractPatterns(sessions []models.GameSession) BehaviorPatterns {
	if len(sessions) == 0 {
		return BehaviorPatterns{}
	}

	ordered := make([]models.GameSession, len(sessions))
	copy(ordered, sessions)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].StartedAt.Before(ordered[j].StartedAt) })

	var recent []RecentGame
	var durationSum float64
	var completed int
	hourCounts := make(map[int]int)
	dayCounts := make(map[time.Weekday]int)
	genreCounts := make(map[string]int)
	for _, s := range ordered {
		if s.GameID != "" {
			recent = pushRecentGame(recent, RecentGame{GameID: s.GameID, PlayedAt: s.StartedAt})
		}
		durationSum += s.DurationMinutes
		if s.Completed {
			completed++
		}
		hourCounts[s.StartedAt.Hour()]++
		dayCounts[s.StartedAt.Weekday()]++
		if s.Genre != "" {
			genreCounts[strings.ToLower(s.Genre)]++
		}
	}

	total := float64(len(ordered))
	completionRate := float64(completed) / total

	span := ordered[len(ordered)-1].StartedAt.Sub(ordered[0].StartedAt)
	weeks := span.Hours() / (24 * 7)
	if weeks < 1 {
		weeks = 1
	}

	maxGenre := 0
	for _, c := range genreCounts {
		if c > maxGenre {
			maxGenre = c
		}
	}
	affinities := make(map[string]float64, len(genreCounts))
	for g, c := range genreCounts {
		affinities[g] = clamp01(float64(c) / float64(maxGenre))
	}

	return BehaviorPatterns{
		RecentGames: recent,
		SessionStats: SessionStats{
			AvgDurationMinutes: durationSum / total,
			SessionsPerWeek:    total / weeks,
			PreferredHour:      modalInt(hourCounts),
			PreferredDay:       modalDay(dayCounts),
		},
		AbandonRate:     clamp01(1 - completionRate),
		CompletionRate:  clamp01(completionRate),
		GenreAffinities: affinities,
	}
}

// modalInt returns the most frequent key; ties break toward the smaller
// key for determinism.
func modalInt(counts map[int]int) int {
	best, bestCount := 0, -1
	for k, c := range counts {
		if c > bestCount || (c == bestCount && k < best) {
			best, bestCount = k, c
		}
	}
	return best
}

// modalDay returns the most frequent weekday; ties break toward the
// earlier weekday.
func modalDay(counts map[time.Weekday]int) time.Weekday {
	best, bestCount := time.Sunday, -1
	for k, c := range counts {
		if c > bestCount || (c == bestCount && k < best) {
			best, bestCount = k, c
		}
	}
	return best
}
