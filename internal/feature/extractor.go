// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package feature

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/tomtom215/playsense/internal/models"
	"github.com/tomtom215/playsense/internal/signal"
)

// Blend fractions for multi-component features. Each feature is an additive
// blend; every component is the fraction times a ratio in [0,1], so the sum
// can never exceed 1 before the final clamp. The fractions are a tuning
// surface, not a contract, but they must stay internally consistent: the
// fractions of one feature always sum to 1.
const (
	// ChallengeSeeking = intensity-blend + genre-blend.
	wChallengeIntensity = 0.6
	wChallengeGenre     = 0.4

	// SocialOpenness = session-blend + activity-blend.
	wSocialSessions = 0.6
	wSocialActivity = 0.4

	// ExplorationBias = genre-variety-blend + platform-blend.
	wExploreGenres   = 0.6
	wExplorePlatform = 0.4

	// FocusStability = completion + daily consistency + main-session ratio.
	wFocusCompletion = 0.4
	wFocusDaily      = 0.3
	wFocusMain       = 0.3

	// platformSwitchCap is the switch count at which the platform component
	// of ExplorationBias saturates.
	platformSwitchCap = 10.0
)

// Advisory validation thresholds.
const (
	extremeVolatility   = 0.95
	suspiciousChallenge = 0.8
	suspiciousLowFocus  = 0.2
)

// Extractor reduces a signal list into the five normalized features.
// It is stateless apart from its logger and safe to reuse across calls.
type Extractor struct {
	logger zerolog.Logger
}

// NewExtractor creates a feature extractor.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewExtractor(logger zerolog.Logger) *Extractor {
	return &Extractor{
		logger: logger.With().Str("component", "feature").Logger(),
	}
}

// Extract computes normalized features from the given signals.
// An empty signal list returns the Neutral sentinel.
func (e *Extractor) Extract(signals []signal.Behavioral) Normalized {
	if len(signals) == 0 {
		return Neutral()
	}

	agg := aggregate(signals)

	f := Normalized{
		EngagementVolatility: e.engagementVolatility(agg),
		ChallengeSeeking:     e.challengeSeeking(agg),
		SocialOpenness:       e.socialOpenness(agg),
		ExplorationBias:      e.explorationBias(agg),
		FocusStability:       e.focusStability(agg),
	}

	e.logger.Debug().
		Int("signals", len(signals)).
		Float64("volatility", f.EngagementVolatility).
		Float64("challenge", f.ChallengeSeeking).
		Float64("social", f.SocialOpenness).
		Float64("exploration", f.ExplorationBias).
		Float64("focus", f.FocusStability).
		Msg("extracted features")

	return f
}

// Validate checks feature ranges and flags suspicious combinations.
// Range violations make the result invalid; combination findings are
// advisory issues on an otherwise valid result.
func (e *Extractor) Validate(f Normalized) ValidationResult {
	res := ValidationResult{Valid: true}

	check := func(name string, v float64) {
		if v < 0 || v > 1 || math.IsNaN(v) {
			res.Valid = false
			res.Issues = append(res.Issues, fmt.Sprintf("%s out of range: %v", name, v))
		}
	}
	check("engagement_volatility", f.EngagementVolatility)
	check("challenge_seeking", f.ChallengeSeeking)
	check("social_openness", f.SocialOpenness)
	check("exploration_bias", f.ExplorationBias)
	check("focus_stability", f.FocusStability)

	if !res.Valid {
		return res
	}

	if f.EngagementVolatility > extremeVolatility {
		res.Issues = append(res.Issues, "extreme engagement volatility; session data may be noisy")
	}
	if f.ChallengeSeeking > suspiciousChallenge && f.FocusStability < suspiciousLowFocus {
		res.Issues = append(res.Issues, "high challenge seeking with very low focus; signals may conflict")
	}

	return res
}

// aggregates holds the per-source tallies one extraction pass needs.
type aggregates struct {
	durations []float64

	sessionCount   int
	mainCount      int
	highMainCount  int
	socialSessions int
	completed      int

	genreCount      int
	challengeShifts int
	distinctGenres  map[string]struct{}

	platformSwitches int

	activityCount  int
	socialActivity int

	dailyMinutes []float64
}

// aggregate walks the signal list once, bucketing by source.
func aggregate(signals []signal.Behavioral) aggregates {
	agg := aggregates{distinctGenres: make(map[string]struct{})}

	for _, s := range signals {
		switch s.Source {
		case signal.SourceSession:
			agg.sessionCount++
			agg.durations = append(agg.durations, dataFloat(s.Data, "duration_minutes"))
			if dataBool(s.Data, "completed") {
				agg.completed++
			}
			if dataBool(s.Data, "social") {
				agg.socialSessions++
			}
			if dataString(s.Data, "kind") == string(models.SessionMain) {
				agg.mainCount++
				if dataString(s.Data, "intensity") == string(models.IntensityHigh) {
					agg.highMainCount++
				}
			}
		case signal.SourceGenre:
			agg.genreCount++
			if dataBool(s.Data, "challenge") {
				agg.challengeShifts++
			}
			if to := dataString(s.Data, "to"); to != "" {
				agg.distinctGenres[to] = struct{}{}
			}
			if from := dataString(s.Data, "from"); from != "" {
				agg.distinctGenres[from] = struct{}{}
			}
		case signal.SourcePlatform:
			agg.platformSwitches++
		case signal.SourceIntegration:
			agg.activityCount++
			if dataBool(s.Data, "social") {
				agg.socialActivity++
			}
		case signal.SourcePlaytime:
			agg.dailyMinutes = append(agg.dailyMinutes, dataFloat(s.Data, "minutes"))
		}
	}

	return agg
}

// engagementVolatility is the coefficient of variation (stddev/mean) of
// session durations, clamped to [0,1]. Only session signals contribute.
func (e *Extractor) engagementVolatility(agg aggregates) float64 {
	if len(agg.durations) == 0 {
		return 0.5
	}
	return clamp01(coefficientOfVariation(agg.durations))
}

// challengeSeeking blends the high-intensity main-session ratio with the
// challenge-coded genre transition ratio.
func (e *Extractor) challengeSeeking(agg aggregates) float64 {
	intensity := componentOrNeutral(agg.highMainCount, agg.mainCount)
	genre := componentOrNeutral(agg.challengeShifts, agg.genreCount)
	return clamp01(wChallengeIntensity*intensity + wChallengeGenre*genre)
}

// socialOpenness blends the social session ratio with the flagged social
// integration-activity ratio.
func (e *Extractor) socialOpenness(agg aggregates) float64 {
	sessions := componentOrNeutral(agg.socialSessions, agg.sessionCount)
	activity := componentOrNeutral(agg.socialActivity, agg.activityCount)
	return clamp01(wSocialSessions*sessions + wSocialActivity*activity)
}

// explorationBias blends the distinct-genre ratio in transitions with the
// capped platform-switch frequency.
func (e *Extractor) explorationBias(agg aggregates) float64 {
	var genres float64
	if agg.genreCount == 0 {
		genres = 0.5
	} else {
		// genreCount transitions touch at most genreCount+1 genres.
		genres = clamp01(float64(len(agg.distinctGenres)-1) / float64(agg.genreCount+1))
	}
	platform := clamp01(float64(agg.platformSwitches) / platformSwitchCap)
	return clamp01(wExploreGenres*genres + wExplorePlatform*platform)
}

// focusStability blends the completion ratio, daily-pattern consistency,
// and the main-session ratio.
func (e *Extractor) focusStability(agg aggregates) float64 {
	completion := componentOrNeutral(agg.completed, agg.sessionCount)
	main := componentOrNeutral(agg.mainCount, agg.sessionCount)

	daily := 0.5
	if len(agg.dailyMinutes) > 1 {
		daily = clamp01(1 - coefficientOfVariation(agg.dailyMinutes))
	}

	return clamp01(wFocusCompletion*completion + wFocusDaily*daily + wFocusMain*main)
}

// componentOrNeutral returns num/den, or the neutral 0.5 when the component
// has no observations at all. A missing component should not drag the blend
// toward zero; it simply contributes no evidence.
func componentOrNeutral(num, den int) float64 {
	if den == 0 {
		return 0.5
	}
	return float64(num) / float64(den)
}

// coefficientOfVariation returns stddev/mean for the sample, or 0 when the
// mean is zero.
func coefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}

	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	stddev := math.Sqrt(ss / float64(len(values)))

	return stddev / mean
}

// dataFloat reads a float64 from signal data, tolerating ints.
func dataFloat(data map[string]any, key string) float64 {
	switch v := data[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// dataBool reads a bool from signal data.
func dataBool(data map[string]any, key string) bool {
	v, _ := data[key].(bool)
	return v
}

// dataString reads a string from signal data.
func dataString(data map[string]any, key string) string {
	v, _ := data[key].(string)
	return v
}
