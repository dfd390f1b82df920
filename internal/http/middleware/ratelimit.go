package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientWindow struct {
	start time.Time
	count int
}

type memoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
}

var memLimiter = &memoryLimiter{clients: make(map[string]*clientWindow)}

// allow implements a fixed window per key, pruning windows that expired.
func (l *memoryLimiter) allow(key string, maxRequests int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.clients[key]
	if !ok || now.Sub(w.start) > window {
		l.clients[key] = &clientWindow{start: now, count: 1}
		if len(l.clients) > 10000 {
			for k, cw := range l.clients {
				if now.Sub(cw.start) > window {
					delete(l.clients, k)
				}
			}
		}
		return true
	}

	w.count++
	return w.count <= maxRequests
}

// SimpleRateLimit is the in-process fallback limiter, keyed by client IP.
// Used directly in tests and by RateLimit when Redis is not configured.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !memLimiter.allow(c.ClientIP(), maxRequests, window) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
