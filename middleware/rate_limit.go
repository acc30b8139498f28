package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client IP
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	idle     time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perMinute requests per IP with bursts up to burst
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		idle:     10 * time.Minute,
	}
}

// Allow reports whether ip may make a request now
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, cl := range l.limiters {
		if now.Sub(cl.lastSeen) > l.idle {
			delete(l.limiters, key)
		}
	}

	cl, ok := l.limiters[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = cl
	}
	cl.lastSeen = now

	return cl.limiter.Allow()
}

// RateLimit middleware limits requests per IP
func RateLimit(perMinute, burst int) gin.HandlerFunc {
	limiter := NewRateLimiter(perMinute, burst)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if !limiter.Allow(clientIP) {
			slog.Warn("rate limit exceeded",
				"client_ip", clientIP,
				"request_id", GetRequestID(c),
				"path", c.Request.URL.Path,
			)

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many report requests. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
