// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/danielhkuo/retro-board/auth"
	"github.com/danielhkuo/retro-board/metrics"
)

// idleLimiterTTL is how long an unused client limiter is kept.
const idleLimiterTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client IP. IPs are kept only as
// salted hashes. Clients control forwarding headers, so they are only used
// when trustProxy is set.
type RateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*clientLimiter
	limit      rate.Limit
	burst      int
	salt       string
	trustProxy bool
	lastSweep  time.Time
	now        func() time.Time
}

// NewRateLimiter allows rps requests per second per client with the given
// burst. rps <= 0 disables limiting.
func NewRateLimiter(rps float64, burst int, salt string, trustProxy bool) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		clients:    make(map[string]*clientLimiter),
		limit:      rate.Limit(rps),
		burst:      burst,
		salt:       salt,
		trustProxy: trustProxy,
		now:        time.Now,
	}
}

func (l *RateLimiter) clientIP(r *http.Request) string {
	if l.trustProxy {
		return GetClientIP(r)
	}
	return RemoteIP(r)
}

func (l *RateLimiter) allow(ip string) bool {
	key := auth.HashIP(ip, l.salt)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > idleLimiterTTL {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) > idleLimiterTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Limit wraps next with the limiter.
func (l *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if l.limit <= 0 {
			next(w, r)
			return
		}
		if !l.allow(l.clientIP(r)) {
			metrics.RateLimited.Inc()
			slog.Warn("rate limit exceeded", "path", r.URL.Path)
			w.Header().Set("Retry-After", "1")
			ErrorResponse(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next(w, r)
	}
}
