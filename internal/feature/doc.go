// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

// Package feature reduces behavioral signals into five normalized [0,1]
// scalars: engagement volatility, challenge seeking, social openness,
// exploration bias, and focus stability.
//
// Every feature is an additive blend of component ratios with fixed
// fractions declared at the top of extractor.go. An empty signal list maps
// to the all-0.5 Neutral sentinel (unknown state), and a component with no
// observations contributes 0.5 rather than dragging the blend to zero.
// Validation flags out-of-range values and suspicious combinations as
// advisory warnings.
package feature
