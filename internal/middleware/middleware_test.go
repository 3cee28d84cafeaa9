// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestIDGenerated(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("no request id in context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("response header %q does not match context id %q", got, seen)
	}
}

func TestRequestIDHonorsUpstream(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "upstream-id" {
		t.Errorf("context id = %q, want the upstream id", seen)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "upstream-id" {
		t.Errorf("echoed id = %q, want the upstream id", got)
	}
}

func TestGetRequestIDMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetRequestID(req.Context()); got != "" {
		t.Errorf("id = %q, want empty without the middleware", got)
	}
}

func TestRateLimiterRejectsBeyondBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/mood/analyze", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	if statuses[0] != http.StatusNoContent || statuses[1] != http.StatusNoContent {
		t.Errorf("burst requests = %v, first two must pass", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", statuses[2])
	}
}

func TestRateLimiterSetsRetryAfter(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:4000"

	handler.ServeHTTP(httptest.NewRecorder(), req)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing on rejection")
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.RemoteAddr = "10.0.0.3:1111"
	handler.ServeHTTP(httptest.NewRecorder(), first)

	exhausted := httptest.NewRecorder()
	handler.ServeHTTP(exhausted, first)
	if exhausted.Code != http.StatusTooManyRequests {
		t.Fatalf("same client second request = %d, want 429", exhausted.Code)
	}

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.4:2222"
	fresh := httptest.NewRecorder()
	handler.ServeHTTP(fresh, other)
	if fresh.Code != http.StatusNoContent {
		t.Errorf("other client = %d, buckets must be per client", fresh.Code)
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(0, 1)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	handler := rl.Handler(inner)
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.5:3000"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("request %d = %d, disabled limiter must pass everything", i, rec.Code)
		}
	}
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	handler := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 after panic", rec.Code)
	}
}

func TestRecoveryPassThrough(t *testing.T) {
	handler := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, recovery must not touch healthy responses", rec.Code)
	}
}
