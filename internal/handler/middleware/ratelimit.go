package middleware

import (
	"log/slog"
	"net/http"

	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware throttles by authenticated user when available and
// falls back to client IP for anonymous callers. Limits are per route
// group, not global.
func RateLimitMiddleware(limiter *ratelimit.Limiter, cfg config.RateLimitConfig, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		key := c.ClientIP()
		if userID, ok := GetUserID(c); ok {
			key = userID.String()
		}

		allowed, err := limiter.Allow(c.Request.Context(), c.FullPath()+":"+key, limit)
		if err != nil {
			slog.Warn("rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
