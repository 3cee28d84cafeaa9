// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/playsense/internal/models"
	"github.com/tomtom215/playsense/internal/mood"
	"github.com/tomtom215/playsense/internal/persona"
)

// Sub-score shape: every match starts at the neutral base and accumulates
// bounded adjustments before the final clamp to [0,100]. The individual
// adjustment magnitudes are a tuning surface; the bounded-additive shape
// and the clamps are not.
const (
	matchBase = 50.0
	matchMin  = 0.0
	matchMax  = 100.0
)

// intentMatch adjustments.
const (
	adjShortSessionFit  = 30.0
	adjShortSessionMiss = -20.0
	adjSocialFit        = 25.0
	adjSocialMiss       = -15.0
	adjChallengeFit     = 30.0
	adjChallengeMiss    = -20.0
	adjExploreNewGenre  = 20.0
	adjExploreFamiliar  = -10.0
	adjRelaxFit         = 20.0
	adjRelaxMiss        = -15.0
	adjProgressRecent   = 25.0

	shortSessionMinutes = 30
	longSessionMinutes  = 90
)

// behaviorMatch adjustments.
const (
	adjLengthClose = 20.0
	adjLengthNear  = 10.0
	adjLengthFar   = -10.0

	lengthCloseMinutes = 15.0
	lengthNearMinutes  = 30.0
	lengthFarMinutes   = 60.0

	genreAffinityScale = 40.0

	adjSocialAlign   = 15.0
	socialAlignPivot = 0.5
)

// explanation priority thresholds.
const (
	explainMoodThreshold   = 70.0
	explainAffinityMinimum = 0.7
	maxExplanations        = 2
)

// moodGenreAffinity maps a mood dimension to per-genre base affinities in
// [0,1]. Genres missing from a row score neutral 0.5.
var moodGenreAffinity = map[string]map[string]float64{
	mood.Calm: {
		"puzzle": 0.9, "simulation": 0.85, "adventure": 0.7, "rpg": 0.6,
		"strategy": 0.55, "shooter": 0.25, "fighting": 0.2,
	},
	mood.Competitive: {
		"shooter": 0.9, "fighting": 0.9, "moba": 0.85, "sports": 0.8,
		"racing": 0.75, "strategy": 0.6, "puzzle": 0.3, "simulation": 0.25,
	},
	mood.Curious: {
		"adventure": 0.9, "rpg": 0.8, "roguelike": 0.75, "indie": 0.75,
		"puzzle": 0.6, "simulation": 0.6, "sports": 0.3,
	},
	mood.Social: {
		"party": 0.9, "moba": 0.8, "shooter": 0.7, "sports": 0.7,
		"mmo": 0.85, "puzzle": 0.35, "simulation": 0.3,
	},
	mood.Focused: {
		"strategy": 0.9, "rpg": 0.85, "roguelike": 0.7, "puzzle": 0.7,
		"simulation": 0.6, "party": 0.25,
	},
}

// moodMatchScore scores a candidate against a mood in [0,100].
func moodMatchScore(moodName string, game models.Game) float64 {
	affinity := 0.5
	if row, ok := moodGenreAffinity[moodName]; ok {
		if v, ok := row[strings.ToLower(game.Genre)]; ok {
			affinity = v
		}
	}

	// Challenging titles lean competitive, easy ones lean calm.
	switch moodName {
	case mood.Competitive:
		if game.IsChallenging() {
			affinity = clamp01f(affinity + 0.1)
		}
	case mood.Calm:
		if game.Difficulty == models.DifficultyEasy {
			affinity = clamp01f(affinity + 0.1)
		} else if game.IsChallenging() {
			affinity = clamp01f(affinity - 0.1)
		}
	case mood.Social:
		if game.IsMultiplayer() {
			affinity = clamp01f(affinity + 0.15)
		}
	}

	return affinity * matchMax
}

// intentMatchScore applies the rule table keyed by intent: base 50 with
// bounded adjustments, clamped to [0,100].
func intentMatchScore(ctx scoringContext, game models.Game) float64 {
	score := matchBase

	switch ctx.intent {
	case persona.IntentShortSession:
		switch {
		case game.EstimatedPlaytimeMinutes > 0 && game.EstimatedPlaytimeMinutes <= shortSessionMinutes:
			score += adjShortSessionFit
		case game.EstimatedPlaytimeMinutes >= longSessionMinutes:
			score += adjShortSessionMiss
		}
	case persona.IntentSocial:
		if game.IsMultiplayer() {
			score += adjSocialFit
		} else {
			score += adjSocialMiss
		}
	case persona.IntentChallenge:
		switch {
		case game.IsChallenging():
			score += adjChallengeFit
		case game.Difficulty == models.DifficultyEasy:
			score += adjChallengeMiss
		}
	case persona.IntentExplore:
		if affinity, known := ctx.genreAffinities[strings.ToLower(game.Genre)]; known {
			if affinity > explainAffinityMinimum {
				score += adjExploreFamiliar
			}
		} else {
			score += adjExploreNewGenre
		}
	case persona.IntentRelax:
		switch {
		case game.Difficulty == models.DifficultyEasy:
			score += adjRelaxFit
		case game.IsChallenging():
			score += adjRelaxMiss
		}
	case persona.IntentProgress:
		if _, recent := ctx.recentGameIDs[game.ID]; recent {
			score += adjProgressRecent
		}
	}

	return clampMatch(score)
}

// behaviorMatchScore scores playtime fit, genre affinity, and multiplayer
// alignment: base 50 with bounded adjustments, clamped to [0,100].
func behaviorMatchScore(ctx scoringContext, game models.Game) float64 {
	score := matchBase

	if game.EstimatedPlaytimeMinutes > 0 && ctx.budgetMinutes > 0 {
		diff := absf(float64(game.EstimatedPlaytimeMinutes) - ctx.budgetMinutes)
		switch {
		case diff <= lengthCloseMinutes:
			score += adjLengthClose
		case diff <= lengthNearMinutes:
			score += adjLengthNear
		case diff > lengthFarMinutes:
			score += adjLengthFar
		}
	}

	if affinity, ok := ctx.genreAffinities[strings.ToLower(game.Genre)]; ok {
		score += (affinity - 0.5) * genreAffinityScale
	}

	wantsSocial := ctx.socialPreference > socialAlignPivot
	if game.IsMultiplayer() == wantsSocial {
		score += adjSocialAlign
	} else {
		score -= adjSocialAlign
	}

	return clampMatch(score)
}

// buildExplanations picks at most two reasons in fixed priority order:
// strong mood match first, then the intent-specific reason, then genre
// affinity.
func buildExplanations(ctx scoringContext, game models.Game, moodMatch float64) []string {
	var out []string

	if moodMatch > explainMoodThreshold && ctx.mood != "" {
		out = append(out, fmt.Sprintf("Fits your current %s mood", ctx.mood))
	}

	if len(out) < maxExplanations {
		if reason := intentExplanation(ctx, game); reason != "" {
			out = append(out, reason)
		}
	}

	if len(out) < maxExplanations {
		if affinity, ok := ctx.genreAffinities[strings.ToLower(game.Genre)]; ok && affinity > explainAffinityMinimum {
			out = append(out, fmt.Sprintf("You play a lot of %s games", strings.ToLower(game.Genre)))
		}
	}

	return out
}

// intentExplanation returns the intent-specific reason, or empty when the
// game does not actually serve the intent.
func intentExplanation(ctx scoringContext, game models.Game) string {
	switch ctx.intent {
	case persona.IntentShortSession:
		if game.EstimatedPlaytimeMinutes > 0 && game.EstimatedPlaytimeMinutes <= shortSessionMinutes {
			return "Quick to pick up when time is short"
		}
	case persona.IntentSocial:
		if game.IsMultiplayer() {
			return "Good for playing with friends"
		}
	case persona.IntentChallenge:
		if game.IsChallenging() {
			return "Will put up a real fight"
		}
	case persona.IntentExplore:
		if _, known := ctx.genreAffinities[strings.ToLower(game.Genre)]; !known {
			return "Something different from your usual genres"
		}
	case persona.IntentRelax:
		if game.Difficulty == models.DifficultyEasy {
			return "Easy to unwind with"
		}
	case persona.IntentProgress:
		if _, recent := ctx.recentGameIDs[game.ID]; recent {
			return "Continue where you left off"
		}
	}
	return ""
}

func clampMatch(v float64) float64 {
	if v < matchMin {
		return matchMin
	}
	if v > matchMax {
		return matchMax
	}
	return v
}

func clamp01f(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
