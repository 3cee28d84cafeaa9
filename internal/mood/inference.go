// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package mood

import (
	"fmt"
	"math"

	"github.com/tomtom215/playsense/internal/feature"
)

// Fixed feature-to-mood weight matrix. Each dimension is an affine blend of
// features (or their complements) whose weights sum to 1, so neutral 0.5
// features always produce a 0.5 dimension. Tuning surface, not contract.
const (
	calmFromSteadiness   = 0.5 // complement of volatility
	calmFromFocus        = 0.3
	calmFromEase         = 0.2 // complement of challenge seeking
	compFromChallenge    = 0.6
	compFromVolatility   = 0.2
	compFromFocus        = 0.2
	curiousFromExplore   = 0.7
	curiousFromLooseness = 0.3 // complement of focus
	socialFromOpenness   = 0.7
	socialFromExplore    = 0.3
	focusedFromFocus     = 0.6
	focusedFromSteady    = 0.2 // complement of volatility
	focusedFromChallenge = 0.2
)

// Confidence shaping: volume saturates at confidenceSignalSpan signals, and
// feature quality scales the result. A fully neutral feature set carries the
// least information and halves the confidence.
const (
	confidenceSignalSpan = 20.0
	qualityFloor         = 0.5
)

// traitThreshold is the dimension value above which a dimension is listed
// as a trait in the insight.
const traitThreshold = 0.6

// Infer maps normalized features to a mood vector through the fixed weight
// matrix. Deterministic; identical features always produce an identical
// vector. Every dimension is clamped to [0,1].
func Infer(f feature.Normalized) Vector {
	return Vector{
		Calm: clamp01(calmFromSteadiness*(1-f.EngagementVolatility) +
			calmFromFocus*f.FocusStability +
			calmFromEase*(1-f.ChallengeSeeking)),
		Competitive: clamp01(compFromChallenge*f.ChallengeSeeking +
			compFromVolatility*f.EngagementVolatility +
			compFromFocus*f.FocusStability),
		Curious: clamp01(curiousFromExplore*f.ExplorationBias +
			curiousFromLooseness*(1-f.FocusStability)),
		Social: clamp01(socialFromOpenness*f.SocialOpenness +
			socialFromExplore*f.ExplorationBias),
		Focused: clamp01(focusedFromFocus*f.FocusStability +
			focusedFromSteady*(1-f.EngagementVolatility) +
			focusedFromChallenge*f.ChallengeSeeking),
	}
}

// Confidence derives an analysis confidence from signal volume and feature
// quality. It deliberately ignores the mood vector: a strong mood reading
// from three signals is still a weak reading.
func Confidence(signalCount int, f feature.Normalized) float64 {
	if signalCount <= 0 {
		return 0
	}

	volume := math.Min(float64(signalCount)/confidenceSignalSpan, 1)

	// Spread measures how far features sit from the all-neutral sentinel.
	spread := (abs(f.EngagementVolatility-0.5) +
		abs(f.ChallengeSeeking-0.5) +
		abs(f.SocialOpenness-0.5) +
		abs(f.ExplorationBias-0.5) +
		abs(f.FocusStability-0.5)) / 5 * 2

	quality := qualityFloor + (1-qualityFloor)*clamp01(spread)

	return clamp01(volume * quality)
}

// DominantMood returns the argmax dimension and its value. Ties are broken
// by the fixed dimension priority order (calm, competitive, curious,
// social, focused).
func DominantMood(v Vector) (string, float64) {
	best := dimensionPriority[0]
	bestVal := v.Dimension(best)
	for _, name := range dimensionPriority[1:] {
		if val := v.Dimension(name); val > bestVal {
			best, bestVal = name, val
		}
	}
	return best, bestVal
}

// ValidateVector enforces the [0,1] range invariant on every dimension.
// It deliberately does not enforce any sum constraint; the dimensions are
// independent affinities.
func ValidateVector(v Vector) feature.ValidationResult {
	res := feature.ValidationResult{Valid: true}
	for _, name := range dimensionPriority {
		val := v.Dimension(name)
		if val < 0 || val > 1 || math.IsNaN(val) {
			res.Valid = false
			res.Issues = append(res.Issues, fmt.Sprintf("%s out of range: %v", name, val))
		}
	}
	return res
}

// moodDescriptions is the one-liner per dominant mood.
var moodDescriptions = map[string]string{
	Calm:        "Settled and unhurried; play is a way to wind down right now.",
	Competitive: "Chasing mastery; drawn to intensity and measurable progress.",
	Curious:     "In discovery mode; new genres and mechanics are the draw.",
	Social:      "Playing for the company; sessions orbit around other people.",
	Focused:     "Locked in; long deliberate sessions on a single goal.",
}

// moodSuggestions are short play-style suggestions per dominant mood.
var moodSuggestions = map[string][]string{
	Calm:        {"Low-stakes exploration or building games fit well.", "Avoid ranked queues for now."},
	Competitive: {"Ranked or high-difficulty content will land well.", "Short warm-up before the main session helps."},
	Curious:     {"Try something outside the usual genres.", "Demos and new releases are worth a look."},
	Social:      {"Co-op or party titles first.", "Invite the usual group before picking a game."},
	Focused:     {"Block out a long uninterrupted session.", "Single-player campaigns over drop-in games."},
}

// BuildInsight derives the textual insight for a vector.
func BuildInsight(v Vector) Insight {
	dominant, _ := DominantMood(v)

	var traits []string
	for _, name := range dimensionPriority {
		if v.Dimension(name) > traitThreshold {
			traits = append(traits, name)
		}
	}

	return Insight{
		Dominant:        dominant,
		Description:     moodDescriptions[dominant],
		Traits:          traits,
		Recommendations: moodSuggestions[dominant],
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
