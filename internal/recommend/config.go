// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package recommend

import (
	"fmt"
	"time"
)

// Config tunes the recommendation service.
type Config struct {
	// MaxRecommendations bounds every returned list.
	MaxRecommendations int `json:"max_recommendations" koanf:"max_recommendations"`

	// Weights sets the relative contribution of the three sub-scores to
	// the combined score. Normalized at runtime; they need not sum to 1.
	Weights AspectWeights `json:"weights" koanf:"weights"`

	// CacheEnabled turns the short-TTL response cache on.
	CacheEnabled bool `json:"cache_enabled" koanf:"cache_enabled"`

	// CacheTTL is how long a cached response stays valid.
	CacheTTL time.Duration `json:"cache_ttl" koanf:"cache_ttl"`

	// FavoredGenreThreshold is the affinity above which a genre enters the
	// favored-genre list of the scoring context.
	FavoredGenreThreshold float64 `json:"favored_genre_threshold" koanf:"favored_genre_threshold"`
}

// AspectWeights weights the three sub-scores.
type AspectWeights struct {
	Mood     float64 `json:"mood" koanf:"mood"`
	Intent   float64 `json:"intent" koanf:"intent"`
	Behavior float64 `json:"behavior" koanf:"behavior"`
}

// Normalize returns a copy with weights scaled to sum to 1. All-zero
// weights normalize to equal thirds.
func (w AspectWeights) Normalize() AspectWeights {
	sum := w.Mood + w.Intent + w.Behavior
	if sum == 0 {
		third := 1.0 / 3.0
		return AspectWeights{Mood: third, Intent: third, Behavior: third}
	}
	return AspectWeights{
		Mood:     w.Mood / sum,
		Intent:   w.Intent / sum,
		Behavior: w.Behavior / sum,
	}
}

// DefaultConfig returns the default recommendation configuration.
func DefaultConfig() Config {
	return Config{
		MaxRecommendations:    10,
		Weights:               AspectWeights{Mood: 0.4, Intent: 0.3, Behavior: 0.3},
		CacheEnabled:          true,
		CacheTTL:              2 * time.Minute,
		FavoredGenreThreshold: 0.7,
	}
}

// Validate checks config invariants.
func (c Config) Validate() error {
	if c.MaxRecommendations <= 0 {
		return fmt.Errorf("max_recommendations must be positive, got %d", c.MaxRecommendations)
	}
	if c.Weights.Mood < 0 || c.Weights.Intent < 0 || c.Weights.Behavior < 0 {
		return fmt.Errorf("aspect weights must be non-negative")
	}
	if c.FavoredGenreThreshold < 0 || c.FavoredGenreThreshold > 1 {
		return fmt.Errorf("favored_genre_threshold must be in [0,1], got %v", c.FavoredGenreThreshold)
	}
	return nil
}
