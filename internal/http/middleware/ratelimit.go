package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	last  time.Time
	count int
}

var rlMu sync.Mutex
var clients = make(map[string]*clientInfo)
var lastSweep time.Time

// pruneClients drops entries whose window has expired. At most one sweep
// runs per window. Caller holds rlMu.
func pruneClients(now time.Time, window time.Duration) {
	if now.Sub(lastSweep) <= window {
		return
	}
	for ip, ci := range clients {
		if now.Sub(ci.last) > window {
			delete(clients, ip)
		}
	}
	lastSweep = now
}

// SimpleRateLimit is an in-process fixed window per client IP.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rlMu.Lock()
		pruneClients(now, window)
		ci, ok := clients[ip]
		if !ok || now.Sub(ci.last) > window {
			ci = &clientInfo{last: now}
			clients[ip] = ci
		}
		ci.count++
		count := ci.count
		rlMu.Unlock()

		if count > maxRequests {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}

// RateLimit uses Redis when InitRedisRateLimiter connected, and the
// in-process limiter otherwise.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	if redisClient != nil {
		return RedisRateLimit(maxRequests, window)
	}
	return SimpleRateLimit(maxRequests, window)
}
