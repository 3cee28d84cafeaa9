// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package models

import "time"

// APIResponse is the uniform envelope for every JSON response. Status is
// "success" or "error"; Error is set only on error responses.
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata carries response observability fields.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	LatencyMS int64     `json:"latency_ms,omitempty"`
}

// APIError is the structured error body.
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
