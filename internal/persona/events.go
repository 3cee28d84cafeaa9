// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package persona

import (
	"time"

	"github.com/tomtom215/playsense/internal/models"
)

// Event is the closed set of persona events. The unexported marker method
// seals the interface: only the variants below can be processed, and the
// dispatch in applyEvent switches over all of them. An event type the
// dispatch does not know is a no-op, never an error.
type Event interface {
	// Kind returns the variant tag for logging and metrics.
	Kind() string

	isPersonaEvent()
}

// MoodEvent reports an observed or declared mood change.
type MoodEvent struct {
	// Mood is a mood dimension name (calm, competitive, ...).
	Mood string `json:"mood" validate:"required,oneof=calm competitive curious social focused"`

	// Intensity is in [1,10]; zero means "keep current intensity".
	Intensity int `json:"intensity,omitempty" validate:"min=0,max=10"`

	// Source names where the event came from (ui, inference, discord).
	Source string `json:"source,omitempty" validate:"max=64"`

	// At is the event time; zero means now.
	At time.Time `json:"at,omitempty"`
}

// IntentEvent reports a declared or inferred session goal.
type IntentEvent struct {
	Intent string    `json:"intent" validate:"required,oneof=short_session challenge social explore relax progress"`
	Source string    `json:"source,omitempty" validate:"max=64"`
	At     time.Time `json:"at,omitempty"`
}

// BehaviorEvent reports a notable gameplay action outside a full session
// record (install, wishlist, launch, abandon).
type BehaviorEvent struct {
	GameID string    `json:"game_id" validate:"required,max=128"`
	Action string    `json:"action" validate:"required,max=64"`
	At     time.Time `json:"at,omitempty"`
}

// SessionEvent reports a finished play session for low-latency pattern
// updates between full analyses.
type SessionEvent struct {
	Session models.GameSession `json:"session"`
}

// AchievementEvent reports an unlocked achievement.
type AchievementEvent struct {
	GameID string    `json:"game_id" validate:"required,max=128"`
	Name   string    `json:"name" validate:"required,max=256"`
	At     time.Time `json:"at,omitempty"`
}

func (MoodEvent) Kind() string        { return "mood" }
func (IntentEvent) Kind() string      { return "intent" }
func (BehaviorEvent) Kind() string    { return "behavior" }
func (SessionEvent) Kind() string     { return "session" }
func (AchievementEvent) Kind() string { return "achievement" }

func (MoodEvent) isPersonaEvent()        {}
func (IntentEvent) isPersonaEvent()      {}
func (BehaviorEvent) isPersonaEvent()    {}
func (SessionEvent) isPersonaEvent()     {}
func (AchievementEvent) isPersonaEvent() {}
