package dto

import "github.com/emre/coursehub/internal/app/models"

// RegisterRequest represents the user registration payload.
// Only STUDENT and INSTRUCTOR are self-assignable; admins are seeded.
type RegisterRequest struct {
	Name     string          `json:"name" binding:"required" example:"Jane Doe"`
	Email    string          `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string          `json:"password" binding:"required" example:"secret12"`
	RoleType models.RoleType `json:"roleType" binding:"required" example:"STUDENT"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"secret12"`
}

// TokenResponse carries the issued bearer token and the authenticated profile
type TokenResponse struct {
	AccessToken string          `json:"accessToken"`
	TokenType   string          `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64           `json:"expiresIn" example:"3600"` // Seconds until expiry
	User        models.Identity `json:"user"`
}
