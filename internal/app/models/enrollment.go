package models

import (
	"time"
)

// Enrollment defines the enrollment fact based on the 'enrollments' table.
// A (student, course) pair exists at most once, enforced by a unique index
// rather than application pre-checks.
type Enrollment struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	StudentID int64     `json:"studentId" db:"student_id" example:"3"`
	CourseID  int64     `json:"courseId" db:"course_id" example:"1"`
	Progress  float64   `json:"progress" db:"progress" example:"0"` // Completion percentage
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
