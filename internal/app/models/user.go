package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Name      string    `json:"name" db:"name" example:"Jane Doe"`                        // User's display name
	Email     string    `json:"email" db:"email" example:"jane@example.com"`              // User's email address (unique)
	Password  string    `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	RoleType  RoleType  `json:"roleType" db:"role_type" example:"STUDENT"`                // User's role (STUDENT, INSTRUCTOR or ADMIN)
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}

// Identity is the minimal acting-user profile attached to a request
// after token resolution. It never carries the credential hash.
type Identity struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  RoleType `json:"roleType"`
}

// Identity projects a user into its request identity.
func (u *User) Identity() Identity {
	return Identity{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.RoleType,
	}
}
