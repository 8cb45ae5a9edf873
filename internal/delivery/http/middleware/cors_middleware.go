package middleware

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware adds CORS headers for the Next.js frontend.
//
// The origin whitelist is strict:
// - Production: only the totl.app domains
// - Development: localhost (disabled when GIN_MODE=release)
// - Vercel previews: only totl-* prefixed subdomains
func CORSMiddleware() gin.HandlerFunc {
	isProduction := os.Getenv("GIN_MODE") == "release"

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		productionOrigins := map[string]bool{
			"https://www.totl.app": true,
			"https://totl.app":     true,
		}

		devOrigins := map[string]bool{
			"http://localhost:3000": true,
			"http://127.0.0.1:3000": true,
			"http://localhost:3001": true,
		}

		var isAllowed bool

		if productionOrigins[origin] {
			isAllowed = true
		}
		if !isProduction && devOrigins[origin] {
			isAllowed = true
		}

		// Vercel preview deployments. Requiring "totl" as the subdomain prefix
		// or a full segment blocks lookalikes such as nottotl.vercel.app.
		if !isAllowed && strings.HasSuffix(origin, ".vercel.app") {
			subdomain := strings.TrimPrefix(origin, "https://")
			subdomain = strings.TrimSuffix(subdomain, ".vercel.app")
			if strings.HasPrefix(subdomain, "totl") || strings.Contains(subdomain, "-totl-") {
				isAllowed = true
			}
		}

		// Same-origin requests carry no Origin header.
		if origin == "" {
			isAllowed = true
		}

		if isAllowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID, Stripe-Signature")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			c.Header("Access-Control-Max-Age", "86400")
		}

		c.Header("Vary", "Origin")

		if c.Request.Method == "OPTIONS" {
			if isAllowed {
				c.AbortWithStatus(204)
			} else {
				c.AbortWithStatus(403)
			}
			return
		}

		c.Next()
	}
}
