package dto

// CreateCourseRequest represents the course creation payload
type CreateCourseRequest struct {
	Title       string   `json:"title" binding:"required" example:"Intro to Databases"`
	Description string   `json:"description" binding:"required" example:"Relational modeling from the ground up"`
	Price       *float64 `json:"price,omitempty" example:"49.90"`
	Thumbnail   *string  `json:"thumbnail,omitempty" example:"https://cdn.example.com/db101.png"`
}

// UpdateCourseRequest carries a partial course update. Empty/absent fields
// leave the stored value untouched; the instructor is never mutable here.
type UpdateCourseRequest struct {
	Title       string   `json:"title,omitempty" example:"Intro to Databases"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Thumbnail   *string  `json:"thumbnail,omitempty"`
}

// CreateLessonRequest represents the lesson creation payload
type CreateLessonRequest struct {
	Title    string  `json:"title" binding:"required" example:"Normalization"`
	Content  *string `json:"content,omitempty"`
	VideoURL *string `json:"videoUrl,omitempty" example:"https://videos.example.com/norm.mp4"`
}

// UpdateLessonRequest carries a partial lesson update
type UpdateLessonRequest struct {
	Title    string  `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	VideoURL *string `json:"videoUrl,omitempty"`
}

// EnrollmentResponse confirms a recorded enrollment fact
type EnrollmentResponse struct {
	EnrollmentID int64  `json:"enrollmentId" example:"12"`
	CourseID     int64  `json:"courseId" example:"1"`
	Message      string `json:"message" example:"Successfully enrolled"`
}
