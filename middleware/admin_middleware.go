package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/models"
)

// AdminMiddleware creates a middleware that ensures the caller has the admin role.
// This middleware should be used after AuthMiddleware
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Not authorized, no token"))
			return
		}

		if roleStr, ok := role.(string); !ok || models.Role(roleStr) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("Admin privileges required"))
			return
		}

		c.Next()
	}
}
