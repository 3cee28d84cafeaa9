// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package mood

import (
	"time"

	"github.com/tomtom215/playsense/internal/feature"
)

// Mood dimension names, in tie-break priority order. When two dimensions
// share the maximum value, the one listed first wins. The order is stable
// and total; DominantMood depends on it.
const (
	Calm        = "calm"
	Competitive = "competitive"
	Curious     = "curious"
	Social      = "social"
	Focused     = "focused"
)

// dimensionPriority is the fixed tie-break order for DominantMood.
var dimensionPriority = []string{Calm, Competitive, Curious, Social, Focused}

// Vector holds five independent [0,1] mood affinities. The dimensions are
// not a probability simplex: they do not sum to 1 and never need to.
type Vector struct {
	Calm        float64 `json:"calm"`
	Competitive float64 `json:"competitive"`
	Curious     float64 `json:"curious"`
	Social      float64 `json:"social"`
	Focused     float64 `json:"focused"`
}

// Dimension returns the named dimension's value. Unknown names return 0.
func (v Vector) Dimension(name string) float64 {
	switch name {
	case Calm:
		return v.Calm
	case Competitive:
		return v.Competitive
	case Curious:
		return v.Curious
	case Social:
		return v.Social
	case Focused:
		return v.Focused
	default:
		return 0
	}
}

// AnalysisResult is the output of one mood analysis pass.
type AnalysisResult struct {
	// UserID is the analyzed user.
	UserID string `json:"user_id"`

	// Vector is the inferred mood vector.
	Vector Vector `json:"mood_vector"`

	// Confidence is in [0,1], driven by signal volume and feature quality,
	// never by the magnitude of the vector itself.
	Confidence float64 `json:"confidence"`

	// SignalCount is how many signals contributed.
	SignalCount int `json:"signal_count"`

	// LastUpdated is when the analysis ran.
	LastUpdated time.Time `json:"last_updated"`

	// Features are the normalized features the vector was derived from.
	Features feature.Normalized `json:"features"`

	// Insight is the human-readable reading of the vector.
	Insight Insight `json:"insight"`
}

// Insight is the textual reading of a mood vector.
type Insight struct {
	// Dominant is the argmax dimension name.
	Dominant string `json:"dominant"`

	// Description is a one-sentence reading of the dominant mood.
	Description string `json:"description"`

	// Traits lists the dimensions scoring noticeably high.
	Traits []string `json:"traits,omitempty"`

	// Recommendations are short play-style suggestions for the mood.
	Recommendations []string `json:"recommendations,omitempty"`
}

// Trend summarizes how the mood moved across stored snapshots.
type Trend struct {
	// Samples is the number of snapshots considered.
	Samples int `json:"samples"`

	// Average is the mean vector across the snapshots.
	Average Vector `json:"average"`

	// Dominant is the dominant dimension of the average vector.
	Dominant string `json:"dominant"`

	// Direction is "rising", "falling", or "steady" for the dominant
	// dimension between the oldest and newest snapshot.
	Direction string `json:"direction"`
}
