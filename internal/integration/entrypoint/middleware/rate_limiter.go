// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/dto"
)

// idleEviction is how long a key may stay unused before Cleanup drops it.
const idleEviction = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles the manual trigger endpoints with one token bucket
// per authenticated user, falling back to the client IP.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	limit   rate.Limit
	burst   int
}

// NewRateLimiter creates a limiter allowing perMinute requests per key with the given burst.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		entries: make(map[string]*limiterEntry),
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   burst,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
// It must run after authentication to key by user.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, ok := GetUserIDFromContext(c); ok {
			key = userID.String()
		}

		if !rl.allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.entries[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.entries[key] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

// Reset clears the rate limiter state.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.entries = make(map[string]*limiterEntry)
}

// Cleanup removes keys that have been idle for a while.
func (rl *RateLimiter) Cleanup() {
	rl.evictIdle(time.Now())
}

func (rl *RateLimiter) evictIdle(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	evicted := 0
	cutoff := now.Add(-idleEviction)
	for key, entry := range rl.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.entries, key)
			evicted++
		}
	}
	return evicted
}

// Size returns the number of tracked keys.
func (rl *RateLimiter) Size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.entries)
}
