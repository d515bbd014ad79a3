package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/middleware"
	"github.com/opsvix-api/services"
)

// AuthController handles admin login and token checks
type AuthController struct {
	responder
	authService *services.AuthService
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService, r responder) *AuthController {
	return &AuthController{responder: r, authService: authService}
}

// RegisterRoutes registers auth routes
func (ac *AuthController) RegisterRoutes(router *gin.RouterGroup, guard gin.HandlerFunc) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", ac.Login)
		auth.GET("/verify", guard, ac.Verify)
	}
}

// Login exchanges the admin credentials for a token
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ac.bindFailed(c, err, "Please provide email and password")
		return
	}

	resp, err := ac.authService.Login(req)
	if err != nil {
		ac.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Verify returns the identity of a valid token
func (ac *AuthController) Verify(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		ac.fail(c, services.ErrInvalidToken)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"admin":   claims.Admin(),
	})
}
