// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/playsense/internal/models"
	"github.com/tomtom215/playsense/internal/mood"
	"github.com/tomtom215/playsense/internal/persona"
)

// Key prefixes for BadgerDB storage. Session and snapshot keys embed a
// nanosecond timestamp so prefix iteration yields chronological order.
const (
	personaKeyPrefix  = "persona:"
	gamesKeyPrefix    = "games:"
	sessionKeyPrefix  = "session:"
	snapshotKeyPrefix = "moodsnap:"
	activityKeyPrefix = "activity:"
)

// maxStoredSnapshots bounds how many mood snapshots are kept per user.
const maxStoredSnapshots = 50

// Badger is the BadgerDB-backed persistence façade. It implements
// persona.Store and mood.SnapshotStore and offers the ingestion methods
// the platform integrations write through. Records are stored as JSON;
// the store is a key-value façade, not a relational engine.
type Badger struct {
	db     *badger.DB
	logger zerolog.Logger
}

// OpenBadger opens (or creates) the store at path. An empty path opens an
// in-memory database, which is what tests and ephemeral deployments use.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func OpenBadger(path string, logger zerolog.Logger) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}

	return &Badger{
		db:     db,
		logger: logger.With().Str("component", "store").Logger(),
	}, nil
}

// Close releases the underlying database.
func (b *Badger) Close() error {
	return b.db.Close()
}

// GetPersona returns the stored persona or persona.ErrPersonaNotFound.
func (b *Badger) GetPersona(ctx context.Context, userID string) (*persona.UnifiedPersona, error) {
	var p persona.UnifiedPersona
	err := b.getJSON(personaKeyPrefix+userID, &p)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, persona.ErrPersonaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get persona: %w", err)
	}
	return &p, nil
}

// CreatePersona stores a new persona record.
func (b *Badger) CreatePersona(ctx context.Context, userID string, p *persona.UnifiedPersona) error {
	return b.setJSON(personaKeyPrefix+userID, p)
}

// UpdatePersona overwrites the stored persona record. Last write wins;
// the store performs no version checks.
func (b *Badger) UpdatePersona(ctx context.Context, userID string, p *persona.UnifiedPersona) error {
	return b.setJSON(personaKeyPrefix+userID, p)
}

// DeletePersona removes the persona record. Deleting a missing persona is
// not an error.
func (b *Badger) DeletePersona(ctx context.Context, userID string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(personaKeyPrefix + userID))
	})
}

// GetUserGames returns the user's game library. A user without a stored
// library gets an empty slice, not an error.
func (b *Badger) GetUserGames(ctx context.Context, userID string) ([]models.Game, error) {
	var games []models.Game
	err := b.getJSON(gamesKeyPrefix+userID, &games)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []models.Game{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user games: %w", err)
	}
	return games, nil
}

// PutUserGames replaces the user's game library.
func (b *Badger) PutUserGames(ctx context.Context, userID string, games []models.Game) error {
	return b.setJSON(gamesKeyPrefix+userID, games)
}

// AppendSession stores one play session.
func (b *Badger) AppendSession(ctx context.Context, s models.GameSession) error {
	key := fmt.Sprintf("%s%s:%020d:%s", sessionKeyPrefix, s.UserID, s.StartedAt.UnixNano(), s.ID)
	return b.setJSON(key, s)
}

// GetGameSessionHistory returns sessions newest first. Empty gameID means
// all games; limit <= 0 means no limit.
func (b *Badger) GetGameSessionHistory(ctx context.Context, userID, gameID string, limit, offset int) ([]models.GameSession, error) {
	prefix := []byte(sessionKeyPrefix + userID + ":")
	sessions := []models.GameSession{}
	skipped := 0

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts just past the prefix range.
		seek := append(append([]byte{}, prefix...), 0xff)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			var s models.GameSession
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &s)
			}); err != nil {
				return err
			}
			if gameID != "" && s.GameID != gameID {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			sessions = append(sessions, s)
			if limit > 0 && len(sessions) >= limit {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get session history: %w", err)
	}
	return sessions, nil
}

// PutActivities replaces the user's stored integration activity.
func (b *Badger) PutActivities(ctx context.Context, userID string, activities []models.Activity) error {
	return b.setJSON(activityKeyPrefix+userID, activities)
}

// GetActivities returns the user's stored integration activity.
func (b *Badger) GetActivities(ctx context.Context, userID string) ([]models.Activity, error) {
	var activities []models.Activity
	err := b.getJSON(activityKeyPrefix+userID, &activities)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []models.Activity{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get activities: %w", err)
	}
	return activities, nil
}

// SaveMoodSnapshot stores a mood analysis result and prunes old snapshots
// beyond the per-user cap.
func (b *Badger) SaveMoodSnapshot(ctx context.Context, userID string, result *mood.AnalysisResult) error {
	key := fmt.Sprintf("%s%s:%020d", snapshotKeyPrefix, userID, result.LastUpdated.UnixNano())
	if err := b.setJSON(key, result); err != nil {
		return err
	}
	return b.pruneSnapshots(userID)
}

// LatestMoodSnapshot returns the most recent stored analysis result, or
// mood.ErrNoSnapshot.
func (b *Badger) LatestMoodSnapshot(ctx context.Context, userID string) (*mood.AnalysisResult, error) {
	results, err := b.MoodSnapshots(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, mood.ErrNoSnapshot
	}
	return results[0], nil
}

// MoodSnapshots returns up to limit stored results, newest first.
func (b *Badger) MoodSnapshots(ctx context.Context, userID string, limit int) ([]*mood.AnalysisResult, error) {
	prefix := []byte(snapshotKeyPrefix + userID + ":")
	results := []*mood.AnalysisResult{}

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		seek := append(append([]byte{}, prefix...), 0xff)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			var r mood.AnalysisResult
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return err
			}
			results = append(results, &r)
			if limit > 0 && len(results) >= limit {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mood snapshots: %w", err)
	}
	return results, nil
}

// pruneSnapshots removes the oldest snapshots beyond the per-user cap.
func (b *Badger) pruneSnapshots(userID string) error {
	prefix := []byte(snapshotKeyPrefix + userID + ":")
	var keys [][]byte

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}

	if len(keys) <= maxStoredSnapshots {
		return nil
	}

	// Keys iterate oldest first; drop the surplus head.
	surplus := keys[:len(keys)-maxStoredSnapshots]
	return b.db.Update(func(txn *badger.Txn) error {
		for _, key := range surplus {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// getJSON reads and unmarshals one key.
func (b *Badger) getJSON(key string, out any) error {
	return b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
}

// setJSON marshals and writes one key.
func (b *Badger) setJSON(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}
