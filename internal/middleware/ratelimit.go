package middleware

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/netip"
	"sync"
	"time"
)

// RateLimiter implements a token bucket per client IP.
type RateLimiter struct {
	mu              sync.Mutex
	requestsPerMin  int
	clients         map[string]*clientBucket
	cleanupInterval time.Duration
	trustedProxies  []netip.Prefix
}

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	RequestsPerMinute int
	CleanupInterval   time.Duration
	TrustedProxies    []netip.Prefix
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.CleanupInterval == 0 {
		config.CleanupInterval = 5 * time.Minute
	}

	rl := &RateLimiter{
		requestsPerMin:  config.RequestsPerMinute,
		clients:         make(map[string]*clientBucket),
		cleanupInterval: config.CleanupInterval,
		trustedProxies:  config.TrustedProxies,
	}

	go rl.cleanupLoop()

	return rl
}

// Middleware returns an HTTP middleware function
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := ClientIP(r, rl.trustedProxies)

			allowed, remaining, resetTime := rl.Allow(clientIP)

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.requestsPerMin))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetTime.Unix()))

			if !allowed {
				log.Printf("ratelimit: limit exceeded for %s on %s", clientIP, r.URL.Path)
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(time.Until(resetTime).Seconds())))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Too many requests. Please try again later.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Allow checks if a request from the given client IP is allowed.
// Returns: (allowed bool, remaining tokens, reset time)
func (rl *RateLimiter) Allow(clientIP string) (bool, int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now().UTC()
	bucket, exists := rl.clients[clientIP]
	if !exists {
		bucket = &clientBucket{
			tokens:     rl.requestsPerMin,
			lastRefill: now,
		}
		rl.clients[clientIP] = bucket
	}

	// Token bucket: full refill every minute, proportional in between.
	elapsed := now.Sub(bucket.lastRefill)
	if elapsed >= time.Minute {
		bucket.tokens = rl.requestsPerMin
		bucket.lastRefill = now
	} else if tokensToAdd := int(float64(rl.requestsPerMin) * (elapsed.Seconds() / 60.0)); tokensToAdd > 0 {
		bucket.tokens += tokensToAdd
		if bucket.tokens > rl.requestsPerMin {
			bucket.tokens = rl.requestsPerMin
		}
		bucket.lastRefill = now
	}

	nextRefill := bucket.lastRefill.Add(time.Minute)
	if bucket.tokens > 0 {
		bucket.tokens--
		return true, bucket.tokens, nextRefill
	}

	return false, 0, nextRefill
}

// cleanupLoop periodically removes stale client buckets to prevent memory leaks
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		rl.cleanup()
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now().UTC()
	staleThreshold := 10 * time.Minute

	for ip, bucket := range rl.clients {
		if now.Sub(bucket.lastRefill) > staleThreshold {
			delete(rl.clients, ip)
		}
	}
}
