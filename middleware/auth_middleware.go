package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/opsvix-api/dto"
)

// Context keys set by AuthMiddleware
const (
	ContextAdmin = "admin"
	ContextEmail = "email"
	ContextRole  = "role"
)

// TokenValidator verifies a session token and returns its claims
type TokenValidator interface {
	ValidateToken(token string) (*dto.TokenClaims, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the decoded claims in the context
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Not authorized, no token"))
			return
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Not authorized, invalid or expired token"))
			return
		}

		c.Set(ContextAdmin, claims)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, string(claims.Role))
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by AuthMiddleware
func ClaimsFrom(c *gin.Context) (*dto.TokenClaims, bool) {
	v, ok := c.Get(ContextAdmin)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*dto.TokenClaims)
	return claims, ok
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
