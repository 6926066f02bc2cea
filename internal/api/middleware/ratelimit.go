package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/cache"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RateLimit rejects callers that exceed limiter with 429. Limiter errors let the request through.
func RateLimit(limiter cache.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn().Err(err).Str("ip", c.ClientIP()).Msg("Rate limiter unavailable")
			c.Next()
			return
		}

		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "too many requests",
				"details": "retry in " + strconv.Itoa(seconds) + "s",
			})
			return
		}

		c.Next()
	}
}
