// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

// Package mood maps normalized behavioral features to a five-dimensional
// mood vector (calm, competitive, curious, social, focused) through a fixed
// weight matrix, and derives a confidence score and a human-readable
// insight from it.
//
// The dimensions are independent affinities in [0,1]; they never sum to 1
// and no validation enforces such a constraint. Confidence scales with
// signal volume and feature quality only, never with the magnitude of the
// vector. The Analyzer wires the whole pipeline (signal collection, feature
// extraction, inference) and keeps the latest result per user in a
// SnapshotStore so GetCurrentMood has something to read after a restart.
package mood
