package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles sync traffic per API key so one chatty terminal
// cannot starve the rest.
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Middleware counts requests per API key (falling back to client IP) inside
// a fixed window. Redis errors fail open; throttling is not worth an outage.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.GetHeader("X-API-Key")
		if key == "ratelimit:" {
			key = "ratelimit:ip:" + c.ClientIP()
		}

		count, err := rl.client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rl.client.Expire(c.Request.Context(), key, rl.window)
		}
		if count > rl.limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"code": "RATE_LIMITED", "message": "Too many requests"})
			return
		}
		c.Next()
	}
}
