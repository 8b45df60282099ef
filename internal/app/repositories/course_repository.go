package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/coursehub/internal/app/models"
	"github.com/emre/coursehub/internal/db"
	"github.com/emre/coursehub/internal/pkg/apperrors"
)

// ICourseRepository defines the interface for course-related database operations
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByIDWithDetails(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	GetByInstructorID(ctx context.Context, instructorID int64) ([]*models.Course, error)
	GetEnrolledByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error)
	CountByInstructorID(ctx context.Context, instructorID int64) (int, error)
	Update(ctx context.Context, course *models.Course) error
	DeleteCascade(ctx context.Context, id int64) error
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create inserts a new course and sets its generated id
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO courses (title, description, instructor_id, price, thumbnail_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		course.Title, course.Description, course.InstructorID, course.Price, course.ThumbnailURL).
		Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a bare course row by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course := &models.Course{}
	err := r.db.QueryRow(ctx, `
		SELECT id, title, description, instructor_id, price, thumbnail_url, created_at, updated_at
		FROM courses
		WHERE id = $1`,
		id).Scan(
		&course.ID, &course.Title, &course.Description, &course.InstructorID,
		&course.Price, &course.ThumbnailURL, &course.CreatedAt, &course.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// GetByIDWithDetails retrieves a course with its instructor projection and lessons
func (r *CourseRepository) GetByIDWithDetails(ctx context.Context, id int64) (*models.Course, error) {
	course := &models.Course{Instructor: &models.CourseInstructor{}}
	err := r.db.QueryRow(ctx, `
		SELECT c.id, c.title, c.description, c.instructor_id, c.price, c.thumbnail_url,
		       c.created_at, c.updated_at, u.id, u.name, u.email
		FROM courses c
		JOIN users u ON u.id = c.instructor_id
		WHERE c.id = $1`,
		id).Scan(
		&course.ID, &course.Title, &course.Description, &course.InstructorID,
		&course.Price, &course.ThumbnailURL, &course.CreatedAt, &course.UpdatedAt,
		&course.Instructor.ID, &course.Instructor.Name, &course.Instructor.Email)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	lessons, err := r.lessonsByCourseID(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Lessons = lessons

	return course, nil
}

// GetAll retrieves all courses with their instructor projections
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	query := squirrel.Select(
		"c.id", "c.title", "c.description", "c.instructor_id", "c.price",
		"c.thumbnail_url", "c.created_at", "c.updated_at", "u.id", "u.name", "u.email",
	).
		From("courses c").
		Join("users u ON u.id = c.instructor_id").
		OrderBy("c.id").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryCoursesWithInstructor(ctx, query)
}

// GetByInstructorID retrieves courses owned by a specific instructor
func (r *CourseRepository) GetByInstructorID(ctx context.Context, instructorID int64) ([]*models.Course, error) {
	query := squirrel.Select(
		"c.id", "c.title", "c.description", "c.instructor_id", "c.price",
		"c.thumbnail_url", "c.created_at", "c.updated_at", "u.id", "u.name", "u.email",
	).
		From("courses c").
		Join("users u ON u.id = c.instructor_id").
		Where("c.instructor_id = ?", instructorID).
		OrderBy("c.id").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryCoursesWithInstructor(ctx, query)
}

// GetEnrolledByStudentID retrieves the courses a student is enrolled in
func (r *CourseRepository) GetEnrolledByStudentID(ctx context.Context, studentID int64) ([]*models.Course, error) {
	query := squirrel.Select(
		"c.id", "c.title", "c.description", "c.instructor_id", "c.price",
		"c.thumbnail_url", "c.created_at", "c.updated_at", "u.id", "u.name", "u.email",
	).
		From("courses c").
		Join("users u ON u.id = c.instructor_id").
		Join("enrollments e ON e.course_id = c.id").
		Where("e.student_id = ?", studentID).
		OrderBy("e.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryCoursesWithInstructor(ctx, query)
}

// CountByInstructorID counts the courses owned by a user
func (r *CourseRepository) CountByInstructorID(ctx context.Context, instructorID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM courses WHERE instructor_id = $1`,
		instructorID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}

	return count, nil
}

// Update persists a course's mutable fields. The instructor column is
// deliberately not part of the statement.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE courses
		SET title = $1, description = $2, price = $3, thumbnail_url = $4, updated_at = NOW()
		WHERE id = $5`,
		course.Title, course.Description, course.Price, course.ThumbnailURL, course.ID)

	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// DeleteCascade deletes a course together with its lessons and enrollment
// facts in one transaction, dependents before the aggregate root.
func (r *CourseRepository) DeleteCascade(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM lessons WHERE course_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting course lessons: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM enrollments WHERE course_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting course enrollments: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting course: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrCourseNotFound
		}

		return nil
	})
}

// queryCoursesWithInstructor runs a squirrel select producing course rows
// joined with their instructor projection.
func (r *CourseRepository) queryCoursesWithInstructor(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Course, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course := &models.Course{Instructor: &models.CourseInstructor{}}
		err := rows.Scan(
			&course.ID, &course.Title, &course.Description, &course.InstructorID,
			&course.Price, &course.ThumbnailURL, &course.CreatedAt, &course.UpdatedAt,
			&course.Instructor.ID, &course.Instructor.Name, &course.Instructor.Email)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

// lessonsByCourseID loads a course's lessons in insertion order
func (r *CourseRepository) lessonsByCourseID(ctx context.Context, courseID int64) ([]*models.Lesson, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, course_id, title, content, video_url, created_at, updated_at
		FROM lessons
		WHERE course_id = $1
		ORDER BY id`,
		courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*models.Lesson
	for rows.Next() {
		lesson := &models.Lesson{}
		err := rows.Scan(
			&lesson.ID, &lesson.CourseID, &lesson.Title, &lesson.Content,
			&lesson.VideoURL, &lesson.CreatedAt, &lesson.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning lesson row: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	return lessons, rows.Err()
}
