package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-totl-backend/internal/delivery/http/response"
	"go-totl-backend/pkg/logger"
)

const internalEmailKeyHeader = "x-totl-internal-email-key"

// InternalKey guards server-to-server routes with a shared secret header.
// Comparison is constant-time; an unconfigured key disables the routes
// entirely rather than leaving them open.
func InternalKey(expectedKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expectedKey == "" {
			response.Error(c, http.StatusServiceUnavailable, "Internal routes are not configured", nil)
			c.Abort()
			return
		}

		provided := c.GetHeader(internalEmailKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expectedKey)) != 1 {
			logger.Log.Warn("internal key rejected", "ip", c.ClientIP(), "path", c.FullPath())
			response.Error(c, http.StatusUnauthorized, "Invalid internal key", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
