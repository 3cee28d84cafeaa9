// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package signal

import (
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/playsense/internal/models"
)

// DefaultBufferCap is the default signal buffer capacity. One analysis pass
// over a year of history for an active player produces well under this.
const DefaultBufferCap = 1024

// challengeGenres marks genres whose transitions count as challenge-seeking
// behavior. Lowercased for case-insensitive matching.
var challengeGenres = map[string]struct{}{
	"soulslike":   {},
	"roguelike":   {},
	"roguelite":   {},
	"fighting":    {},
	"bullet hell": {},
	"rts":         {},
	"speedrun":    {},
}

// Collector converts raw session, genre, playtime, platform, and integration
// history into weighted behavioral signals. It keeps an internal capped ring
// buffer so that callers can query statistics after collection.
//
// A Collector is scoped to one user (or one analysis pass); it is not safe
// for concurrent use and must not be shared across users.
type Collector struct {
	logger  zerolog.Logger
	buf     []Behavioral
	cap     int
	dropped int
}

// NewCollector creates a collector with the given buffer capacity.
// A capacity <= 0 falls back to DefaultBufferCap.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCollector(bufferCap int, logger zerolog.Logger) *Collector {
	if bufferCap <= 0 {
		bufferCap = DefaultBufferCap
	}
	return &Collector{
		logger: logger.With().Str("component", "signal").Logger(),
		buf:    make([]Behavioral, 0, bufferCap),
		cap:    bufferCap,
	}
}

// CollectSessions converts play sessions into session signals.
// Empty input yields no signals and no error; collection is total.
func (c *Collector) CollectSessions(sessions []models.GameSession) []Behavioral {
	out := make([]Behavioral, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, c.push(Behavioral{
			Timestamp: s.StartedAt,
			Source:    SourceSession,
			Weight:    WeightSession,
			Data: map[string]any{
				"game_id":          s.GameID,
				"duration_minutes": s.DurationMinutes,
				"completed":        s.Completed,
				"kind":             string(s.Kind),
				"intensity":        string(s.Intensity),
				"social":           s.Social,
			},
		}))
	}
	return out
}

// CollectGenreTransitions converts genre transitions into genre signals.
// Transitions into a challenge-coded genre are flagged.
func (c *Collector) CollectGenreTransitions(transitions []GenreTransition) []Behavioral {
	out := make([]Behavioral, 0, len(transitions))
	for _, t := range transitions {
		_, challenge := challengeGenres[strings.ToLower(t.To)]
		out = append(out, c.push(Behavioral{
			Timestamp: t.At,
			Source:    SourceGenre,
			Weight:    WeightGenre,
			Data: map[string]any{
				"from":      strings.ToLower(t.From),
				"to":        strings.ToLower(t.To),
				"challenge": challenge,
			},
		}))
	}
	return out
}

// CollectPlaytime converts a daily playtime series into playtime signals.
func (c *Collector) CollectPlaytime(series []PlaytimePoint) []Behavioral {
	out := make([]Behavioral, 0, len(series))
	for _, p := range series {
		out = append(out, c.push(Behavioral{
			Timestamp: p.Day,
			Source:    SourcePlaytime,
			Weight:    WeightPlaytime,
			Data: map[string]any{
				"minutes": p.Minutes,
			},
		}))
	}
	return out
}

// CollectPlatformSwitches converts platform switches into platform signals.
func (c *Collector) CollectPlatformSwitches(switches []PlatformSwitch) []Behavioral {
	out := make([]Behavioral, 0, len(switches))
	for _, sw := range switches {
		out = append(out, c.push(Behavioral{
			Timestamp: sw.At,
			Source:    SourcePlatform,
			Weight:    WeightPlatform,
			Data: map[string]any{
				"from": strings.ToLower(sw.From),
				"to":   strings.ToLower(sw.To),
			},
		}))
	}
	return out
}

// CollectActivities converts integration activity events into integration
// signals.
func (c *Collector) CollectActivities(activities []models.Activity) []Behavioral {
	out := make([]Behavioral, 0, len(activities))
	for _, a := range activities {
		out = append(out, c.push(Behavioral{
			Timestamp: a.Timestamp,
			Source:    SourceIntegration,
			Weight:    WeightIntegration,
			Data: map[string]any{
				"source": a.Source,
				"type":   a.Type,
				"social": a.Social,
			},
		}))
	}
	return out
}

// Signals returns the buffered signals in collection order.
// The returned slice is a copy; mutating it does not affect the buffer.
func (c *Collector) Signals() []Behavioral {
	out := make([]Behavioral, len(c.buf))
	copy(out, c.buf)
	return out
}

// Stats returns summary statistics over the buffered signals.
func (c *Collector) Stats() Stats {
	st := Stats{
		Total:    len(c.buf),
		BySource: make(map[Source]int),
		Dropped:  c.dropped,
	}
	for i, s := range c.buf {
		st.BySource[s.Source]++
		if i == 0 || s.Timestamp.Before(st.Oldest) {
			st.Oldest = s.Timestamp
		}
		if i == 0 || s.Timestamp.After(st.Newest) {
			st.Newest = s.Timestamp
		}
	}
	return st
}

// Clear drops all buffered signals and resets the eviction counter.
func (c *Collector) Clear() {
	c.buf = c.buf[:0]
	c.dropped = 0
}

// push appends a signal to the buffer, evicting the oldest entry (FIFO)
// when the buffer is at capacity.
func (c *Collector) push(s Behavioral) Behavioral {
	if s.Weight == 0 {
		s.Weight = weightFor(s.Source)
	}
	if len(c.buf) >= c.cap {
		copy(c.buf, c.buf[1:])
		c.buf = c.buf[:len(c.buf)-1]
		c.dropped++
		if c.dropped == 1 {
			c.logger.Debug().Int("cap", c.cap).Msg("signal buffer full, evicting oldest")
		}
	}
	c.buf = append(c.buf, s)
	return s
}

// DeriveGenreTransitions extracts genre transitions from sessions ordered by
// start time. Sessions with an empty genre are skipped.
func DeriveGenreTransitions(sessions []models.GameSession) []GenreTransition {
	var out []GenreTransition
	var prev string
	var have bool
	for _, s := range sortedByStart(sessions) {
		if s.Genre == "" {
			continue
		}
		if have && !strings.EqualFold(prev, s.Genre) {
			out = append(out, GenreTransition{From: prev, To: s.Genre, At: s.StartedAt})
		}
		prev, have = s.Genre, true
	}
	return out
}

// DerivePlatformSwitches extracts platform switches from sessions ordered by
// start time. Sessions with an empty platform are skipped.
func DerivePlatformSwitches(sessions []models.GameSession) []PlatformSwitch {
	var out []PlatformSwitch
	var prev string
	var have bool
	for _, s := range sortedByStart(sessions) {
		if s.Platform == "" {
			continue
		}
		if have && !strings.EqualFold(prev, s.Platform) {
			out = append(out, PlatformSwitch{From: prev, To: s.Platform, At: s.StartedAt})
		}
		prev, have = s.Platform, true
	}
	return out
}

// DerivePlaytimeSeries aggregates session durations into a per-day series.
// Days are truncated to UTC midnight and returned in ascending order.
func DerivePlaytimeSeries(sessions []models.GameSession) []PlaytimePoint {
	byDay := make(map[time.Time]float64)
	for _, s := range sessions {
		day := s.StartedAt.UTC().Truncate(24 * time.Hour)
		byDay[day] += s.DurationMinutes
	}

	out := make([]PlaytimePoint, 0, len(byDay))
	for day, minutes := range byDay {
		out = append(out, PlaytimePoint{Day: day, Minutes: minutes})
	}
	sortPlaytime(out)
	return out
}

// sortedByStart returns a copy of sessions ordered by start time ascending.
func sortedByStart(sessions []models.GameSession) []models.GameSession {
	out := make([]models.GameSession, len(sessions))
	copy(out, sessions)
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}

// sortPlaytime orders playtime points by day ascending.
func sortPlaytime(points []PlaytimePoint) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].Day.Before(points[j].Day)
	})
}
