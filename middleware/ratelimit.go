package middleware

import (
	"log"
	"net/http"
	"time"

	"Quadra/services/redis"

	"github.com/gin-gonic/gin"
)

// Fixed-window rate limit per client IP
const (
	RateLimitJanela  = time.Minute
	RateLimitMaximas = 120
)

// RateLimit rejects clients that exceed the per-minute request budget. The
// counters live in Redis so every instance shares the same window. When
// Redis is unreachable the request goes through; throttling is best effort.
func RateLimit(rc *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := rc.IncrementarJanela(c.ClientIP(), RateLimitJanela)
		if err != nil {
			log.Printf("rate limit unavailable: %v", err)
			c.Next()
			return
		}
		if count > RateLimitMaximas {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "muitas requisições, tente novamente em instantes",
			})
			return
		}
		c.Next()
	}
}
