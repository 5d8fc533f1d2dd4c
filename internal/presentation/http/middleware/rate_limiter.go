package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/marketpos/marketpos-api/internal/presentation/http/dto/response"
)

// RateLimiterConfig holds the settings for the per-user rate limiter.
type RateLimiterConfig struct {
	RequestsPerSecond rate.Limit
	Burst             int
	CleanupInterval   time.Duration
	EntryTTL          time.Duration
}

// DefaultRateLimiterConfig returns sensible defaults for a POS terminal
// workload: short bursts of scans followed by idle time.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		Burst:             30,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          15 * time.Minute,
	}
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserRateLimiter throttles requests per authenticated user. Unauthenticated
// requests fall back to the client IP as the bucket key.
type UserRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rateLimiterEntry
	config   RateLimiterConfig
	stop     chan struct{}
}

func NewUserRateLimiter(config RateLimiterConfig) *UserRateLimiter {
	rl := &UserRateLimiter{
		limiters: make(map[string]*rateLimiterEntry),
		config:   config,
		stop:     make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *UserRateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.limiters[key]
	if !ok {
		entry = &rateLimiterEntry{
			limiter: rate.NewLimiter(rl.config.RequestsPerSecond, rl.config.Burst),
		}
		rl.limiters[key] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (rl *UserRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := time.Now().Add(-rl.config.EntryTTL)
			for key, entry := range rl.limiters {
				if entry.lastSeen.Before(cutoff) {
					delete(rl.limiters, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

// Stop terminates the background cleanup goroutine.
func (rl *UserRateLimiter) Stop() {
	close(rl.stop)
}

// Middleware returns the gin handler enforcing the rate limit.
func (rl *UserRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, exists := c.Get("user_id"); exists {
			if id, ok := userID.(uuid.UUID); ok {
				key = id.String()
			}
		}

		if !rl.getLimiter(key).Allow() {
			response.ErrorWithCode(c, http.StatusTooManyRequests, "Rate limit exceeded, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
