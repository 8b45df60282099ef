package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "STUDENT"
	RoleInstructor RoleType = "INSTRUCTOR"
	RoleAdmin      RoleType = "ADMIN"
)

// ValidRole reports whether the given value is a known role.
func ValidRole(role RoleType) bool {
	switch role {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// CanAuthorCourses reports whether a role may own courses.
func (r RoleType) CanAuthorCourses() bool {
	return r == RoleInstructor || r == RoleAdmin
}
