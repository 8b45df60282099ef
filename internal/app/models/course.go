package models

import (
	"time"
)

// Course defines the course model based on the 'courses' table.
// A course is the aggregate root: it exclusively owns its lessons and is
// referenced (not owned) by enrollment facts.
type Course struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Title        string    `json:"title" db:"title" example:"Intro to Databases"`
	Description  string    `json:"description" db:"description" example:"Relational modeling from the ground up"`
	InstructorID int64     `json:"instructorId" db:"instructor_id" example:"7"` // Owning user id, immutable after creation
	Price        float64   `json:"price" db:"price" example:"49.90"`
	ThumbnailURL *string   `json:"thumbnailUrl,omitempty" db:"thumbnail_url"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	Instructor *CourseInstructor `json:"instructor,omitempty"` // Relation, no db tag
	Lessons    []*Lesson         `json:"lessons,omitempty"`    // Relation, no db tag
}

// CourseInstructor is the minimal instructor projection exposed on public
// course listings. The credential hash is never part of it.
type CourseInstructor struct {
	ID    int64  `json:"id" example:"7"`
	Name  string `json:"name" example:"Jane Doe"`
	Email string `json:"email,omitempty" example:"jane@example.com"`
}
