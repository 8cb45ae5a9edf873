package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"go-totl-backend/config"
	"go-totl-backend/internal/delivery/http/response"
	"go-totl-backend/internal/domain"
	"go-totl-backend/pkg/auth"
	"go-totl-backend/pkg/logger"
)

// Identify resolves the caller's identity when a token is present. It never
// aborts: requests without a token, with a bad token, or whose profile fails
// to load all continue, and downstream middleware decides what that means.
func Identify(jwksProvider *auth.Provider, cfg *config.Config, profiles domain.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := verifyToken(tokenString, jwksProvider, cfg)
		if err != nil {
			logger.Log.Debug("token rejected", "error", err)
			c.Next()
			return
		}

		// Profile load is best-effort. A missing or unreadable row leaves
		// KeyProfile unset and the gate falls back to its bootstrap branch.
		profile, err := profiles.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			profile = nil
		}

		role := claims.Role
		if profile != nil {
			// The database row wins over the JWT claim; roles change without
			// re-issuing tokens.
			role = profile.Role
		}

		c.Set(string(domain.KeyUserID), claims.UserID)
		c.Set(string(domain.KeyUserEmail), claims.Email)
		c.Set(string(domain.KeyUserRole), string(role))
		c.Set(string(domain.KeyClaims), claims)
		if profile != nil {
			c.Set(string(domain.KeyProfile), profile)
		}

		// Usecases read typed keys off the request context.
		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, domain.KeyUserRole, string(role))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAuth aborts unauthenticated requests with 401. Run after Identify.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentClaims(c); !ok {
			response.Error(c, http.StatusUnauthorized, "Authorization required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentClaims returns the verified claims Identify stored, if any.
func CurrentClaims(c *gin.Context) (*domain.AuthClaims, bool) {
	v, ok := c.Get(string(domain.KeyClaims))
	if !ok {
		return nil, false
	}
	claims, ok := v.(*domain.AuthClaims)
	return claims, ok
}

// CurrentProfile returns the profile Identify loaded, or nil when the load
// failed or the row is missing.
func CurrentProfile(c *gin.Context) *domain.Profile {
	v, ok := c.Get(string(domain.KeyProfile))
	if !ok {
		return nil
	}
	profile, _ := v.(*domain.Profile)
	return profile
}

func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}

// verifyToken validates a Supabase JWT. HS256 tokens use the shared secret,
// RS256 tokens resolve their key through the JWKS provider.
func verifyToken(tokenString string, jwksProvider *auth.Provider, cfg *config.Config) (*domain.AuthClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
			if cfg.SupabaseJWTSecret == "" {
				return nil, fmt.Errorf("HS256 token received but SUPABASE_JWT_SECRET is not configured")
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		}
		if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
			return jwksProvider.KeyFunc(token)
		}
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token missing sub")
	}
	email, _ := mapClaims["email"].(string)

	claims := &domain.AuthClaims{UserID: sub, Email: email}

	if meta, ok := mapClaims["user_metadata"].(map[string]interface{}); ok {
		if first, ok := meta["first_name"].(string); ok {
			claims.FirstName = first
		}
		if last, ok := meta["last_name"].(string); ok {
			claims.LastName = last
		}
		if role, ok := meta["role"].(string); ok {
			claims.Role = domain.Role(role)
		}
	}
	if confirmed, ok := mapClaims["email_confirmed_at"].(string); ok && confirmed != "" {
		if t, err := time.Parse(time.RFC3339, confirmed); err == nil {
			claims.EmailVerifiedAt = &t
		}
	}

	return claims, nil
}
