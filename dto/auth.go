package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/opsvix-api/models"
)

// TokenClaims represents our custom JWT claims
type TokenClaims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Admin returns the identity carried by the claims
func (c *TokenClaims) Admin() models.Admin {
	return models.Admin{Email: c.Email, Role: c.Role}
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the response after authentication
type AuthResponse struct {
	Success   bool         `json:"success"`
	Token     string       `json:"token"`
	Admin     models.Admin `json:"admin"`
	ExpiresAt time.Time    `json:"expiresAt"`
}
