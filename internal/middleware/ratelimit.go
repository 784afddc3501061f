package middleware

import (
	"net/http"

	"coinnecta/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RateLimit rejects requests beyond rps with a burst allowance, shared across all clients.
// A non-positive rps disables the limiter.
func RateLimit(rps float64, burst int, log logrus.FieldLogger) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			log.WithFields(logrus.Fields{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
				"remote": c.ClientIP(),
			}).Warn("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Error(http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests)))
			return
		}
		c.Next()
	}
}
