package models

import (
	"time"
)

// Lesson defines the lesson model based on the 'lessons' table. Lessons
// have no owner of their own; authorization always derives from the
// owning course's instructor.
type Lesson struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	CourseID  int64     `json:"courseId" db:"course_id" example:"1"` // Owning course id, immutable
	Title     string    `json:"title" db:"title" example:"Normalization"`
	Content   *string   `json:"content,omitempty" db:"content"`
	VideoURL  *string   `json:"videoUrl,omitempty" db:"video_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
