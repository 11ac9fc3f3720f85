package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit returns a Gin middleware that applies a per-user token bucket.
// Every chatbot request may fan out into paid model calls, so the chat routes
// are limited to perMinute requests per user with the given burst. Must run
// after AuthMiddleware.
func RateLimit(perMinute, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[uint]*rate.Limiter)
	)

	limiterFor := func(userID uint) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		lim, ok := limiters[userID]
		if !ok {
			lim = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst)
			limiters[userID] = lim
		}
		return lim
	}

	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		if !limiterFor(userID.(uint)).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, slow down"})
			c.Abort()
			return
		}

		c.Next()
	}
}
