package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-totl-backend/internal/domain"
)

// RouteGate evaluates the app routing rules against the request path (with
// the /v1 API prefix stripped) and turns a redirect decision into a 302.
// Run after Identify so identity and profile are already resolved.
func RouteGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := strings.TrimPrefix(c.Request.URL.Path, "/v1")
		if path == "" {
			path = "/"
		}

		_, authenticated := CurrentClaims(c)
		decision := domain.EvaluateGate(domain.GateInput{
			Path:          path,
			Query:         c.Request.URL.Query(),
			Authenticated: authenticated,
			Profile:       CurrentProfile(c),
		})

		if decision.Redirect {
			c.Redirect(http.StatusFound, decision.Target)
			c.Abort()
			return
		}
		c.Next()
	}
}
