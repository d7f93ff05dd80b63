package middleware

import (
	"net/http"
	"strings"

	"cms-backend/services"

	"github.com/gin-gonic/gin"
)

// ClaimsKey is the gin context key holding the admin's *services.Claims.
const ClaimsKey = "admin_claims"

type TokenParser interface {
	ParseToken(raw string) (*services.Claims, error)
}

// RequireAdmin rejects requests without a valid console bearer token.
func RequireAdmin(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, raw, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := tokens.ParseToken(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// AdminClaims returns the claims stored by RequireAdmin.
func AdminClaims(c *gin.Context) (*services.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*services.Claims)
	return claims, ok
}
