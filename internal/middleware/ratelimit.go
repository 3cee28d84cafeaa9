// Playsense - Player Mood Analytics and Game Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playsense

package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/playsense/internal/metrics"
)

// clientLimiter pairs a token bucket with its last-seen time so idle
// clients can be evicted.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-client token bucket keyed by remote IP.
type RateLimiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

// clientIdleTimeout is how long an idle client's bucket survives before
// the sweep removes it.
const clientIdleTimeout = 10 * time.Minute

// NewRateLimiter creates a per-client rate limiter. rps <= 0 disables
// limiting entirely.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*clientLimiter),
	}
}

// Handler wraps next with the rate limit. Rejected requests get 429.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	if rl.rps <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientKey(r)) {
			metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
			w.Header().Set("Retry-After", "1")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allow consumes one token for the client, creating its bucket on first
// sight and sweeping idle buckets opportunistically.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cl, ok := rl.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[key] = cl
	}
	cl.lastSeen = now

	for k, c := range rl.clients {
		if now.Sub(c.lastSeen) > clientIdleTimeout {
			delete(rl.clients, k)
		}
	}

	return cl.limiter.Allow()
}

// clientKey derives the limiter key from the remote address.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
