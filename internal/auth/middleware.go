package auth

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"promotions-api/internal/logger"
)

const apiKeyHeader = "X-API-Key"

// APIKeyAuth returns a middleware that checks the X-API-Key header against
// the API_KEY environment variable. When API_KEY is unset the middleware is
// a no-op, so local development and tests run without credentials.
func APIKeyAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := os.Getenv("API_KEY")
		if expected == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(apiKeyHeader)
		if provided == "" {
			logger.Warn("Request rejected: missing API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrMissingAPIKey.Error()})
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			logger.Warn("Request rejected: invalid API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidAPIKey.Error()})
			return
		}

		c.Next()
	}
}
