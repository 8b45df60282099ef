package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/coursehub/internal/app/models"
	"github.com/emre/coursehub/internal/pkg/apperrors"
	"github.com/emre/coursehub/internal/pkg/dberrors"
)

// EnrollmentUniqueConstraint is the unique index guarding the
// at-most-one-fact-per-(student, course) invariant.
const EnrollmentUniqueConstraint = "enrollments_student_course_key"

// IEnrollmentRepository defines the interface for enrollment-related database
// operations. Reads that join back to courses live on ICourseRepository.
type IEnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Exists(ctx context.Context, studentID, courseID int64) (bool, error)
}

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create records an enrollment fact. The unique index on
// (student_id, course_id) is the authoritative duplicate guard: a
// violation surfaces as ErrAlreadyEnrolled no matter how many concurrent
// requests raced past the service's pre-check.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := squirrel.Insert("enrollments").
		Columns("student_id", "course_id", "progress").
		Values(enrollment.StudentID, enrollment.CourseID, enrollment.Progress).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&enrollment.ID, &enrollment.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, EnrollmentUniqueConstraint) {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// Exists checks whether an enrollment fact is recorded for the pair
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	query := squirrel.Select("1").
		From("enrollments").
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}
