package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/coursehub/internal/app/models"
	"github.com/emre/coursehub/internal/pkg/apperrors"
)

// ILessonRepository defines the interface for lesson-related database operations
type ILessonRepository interface {
	Create(ctx context.Context, lesson *models.Lesson) error
	GetByID(ctx context.Context, id int64) (*models.Lesson, error)
	GetByCourseID(ctx context.Context, courseID int64) ([]*models.Lesson, error)
	Update(ctx context.Context, lesson *models.Lesson) error
	Delete(ctx context.Context, id int64) error
}

// LessonRepository handles lesson database operations
type LessonRepository struct {
	db *pgxpool.Pool
}

// NewLessonRepository creates a new LessonRepository
func NewLessonRepository(db *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{db: db}
}

// Create inserts a new lesson and sets its generated id
func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO lessons (course_id, title, content, video_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		lesson.CourseID, lesson.Title, lesson.Content, lesson.VideoURL).
		Scan(&lesson.ID, &lesson.CreatedAt, &lesson.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating lesson: %w", err)
	}

	return nil
}

// GetByID retrieves a lesson by ID
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	lesson := &models.Lesson{}
	err := r.db.QueryRow(ctx, `
		SELECT id, course_id, title, content, video_url, created_at, updated_at
		FROM lessons
		WHERE id = $1`,
		id).Scan(
		&lesson.ID, &lesson.CourseID, &lesson.Title, &lesson.Content,
		&lesson.VideoURL, &lesson.CreatedAt, &lesson.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLessonNotFound
		}
		return nil, fmt.Errorf("error retrieving lesson: %w", err)
	}

	return lesson, nil
}

// GetByCourseID retrieves a course's lessons in insertion order
func (r *LessonRepository) GetByCourseID(ctx context.Context, courseID int64) ([]*models.Lesson, error) {
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

// Update persists a lesson's mutable fields. The course column never changes.
func (r *LessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE lessons
		SET title = $1, content = $2, video_url = $3, updated_at = NOW()
		WHERE id = $4`,
		lesson.Title, lesson.Content, lesson.VideoURL, lesson.ID)

	if err != nil {
		return fmt.Errorf("error updating lesson: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}

	return nil
}

// Delete removes a lesson
func (r *LessonRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting lesson: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}

	return nil
}
