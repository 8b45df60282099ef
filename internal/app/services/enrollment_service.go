package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/emre/coursehub/internal/app/models"
	"github.com/emre/coursehub/internal/app/repositories"
	"github.com/emre/coursehub/internal/pkg/apperrors"
)

// EnrollmentService defines the interface for enrollment operations
type EnrollmentService interface {
	Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	ListForStudent(ctx context.Context, studentID int64) ([]*models.Course, error)
}

// enrollmentServiceImpl implements EnrollmentService
type enrollmentServiceImpl struct {
	enrollmentRepo repositories.IEnrollmentRepository
	courseRepo     repositories.ICourseRepository
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollmentRepo repositories.IEnrollmentRepository,
	courseRepo repositories.ICourseRepository,
	logger zerolog.Logger,
) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		logger:         logger,
	}
}

// Enroll records that the student joined the course. Duplicate enrollment
// is rejected by the unique index on (student_id, course_id), so two
// concurrent requests for the same pair yield exactly one row.
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error getting course for enrollment: %w", err)
	}

	if course.InstructorID == studentID {
		return nil, apperrors.ErrOwnCourseEnrollment
	}

	// Fast path only; the unique index still decides races.
	enrolled, err := s.enrollmentRepo.Exists(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing enrollment: %w", err)
	}
	if enrolled {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
	}

	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyEnrolled) {
			return nil, apperrors.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("enrollment creation error: %w", err)
	}

	s.logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Student enrolled")
	return enrollment, nil
}

// ListForStudent retrieves the courses the student is enrolled in
func (s *enrollmentServiceImpl) ListForStudent(ctx context.Context, studentID int64) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetEnrolledByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrolled courses: %w", err)
	}
	return courses, nil
}
