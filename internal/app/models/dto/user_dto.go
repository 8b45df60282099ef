package dto

import "github.com/emre/coursehub/internal/app/models"

// UpdateUserRequest carries a partial admin-side user update.
// Role changes go through this path only.
type UpdateUserRequest struct {
	Name     string          `json:"name,omitempty" example:"Jane Doe"`
	Email    string          `json:"email,omitempty" example:"jane@example.com"`
	RoleType models.RoleType `json:"roleType,omitempty" example:"INSTRUCTOR"`
}
