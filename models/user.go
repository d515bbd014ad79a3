package models

// Role represents the role carried in an admin session token
type Role string

const (
	RoleAdmin Role = "admin"
)

// Admin is the identity derived from the configured admin credentials.
// It is never stored; it only exists inside issued tokens.
type Admin struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
