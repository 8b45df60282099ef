package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emre/coursehub/internal/app/auth"
	"github.com/emre/coursehub/internal/app/models"
	"github.com/emre/coursehub/internal/app/models/dto"
	"github.com/emre/coursehub/internal/app/repositories"
	"github.com/emre/coursehub/internal/pkg/apperrors"
)

// CourseService defines the interface for course and lesson operations.
// Every mutation validates ownership through the authorization service
// before touching the aggregate.
type CourseService interface {
	CreateCourse(ctx context.Context, instructorID int64, req *dto.CreateCourseRequest) (*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, courseID, userID int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, courseID, userID int64) error

	AddLesson(ctx context.Context, courseID, userID int64, req *dto.CreateLessonRequest) (*models.Lesson, error)
	ListLessons(ctx context.Context, courseID int64) ([]*models.Lesson, error)
	UpdateLesson(ctx context.Context, courseID, lessonID, userID int64, req *dto.UpdateLessonRequest) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, courseID, lessonID, userID int64) error
}

// minDescriptionLength is the shortest acceptable course description
const minDescriptionLength = 10

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courseRepo   repositories.ICourseRepository
	lessonRepo   repositories.ILessonRepository
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo repositories.ICourseRepository,
	lessonRepo repositories.ILessonRepository,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) CourseService {
	return &courseServiceImpl{
		courseRepo:   courseRepo,
		lessonRepo:   lessonRepo,
		authzService: authzService,
		logger:       logger,
	}
}

// CreateCourse creates a course owned by the acting instructor. The owner
// comes from the authenticated identity, never from the request body.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, instructorID int64, req *dto.CreateCourseRequest) (*models.Course, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}
	if len(strings.TrimSpace(req.Description)) < minDescriptionLength {
		return nil, fmt.Errorf("%w: description must be at least %d characters", apperrors.ErrValidationFailed, minDescriptionLength)
	}

	course := &models.Course{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		InstructorID: instructorID,
		ThumbnailURL: req.Thumbnail,
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative", apperrors.ErrValidationFailed)
		}
		course.Price = *req.Price
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("course creation error: %w", err)
	}

	s.logger.Info().Int64("courseID", course.ID).Int64("instructorID", instructorID).Msg("Course created")
	return course, nil
}

// GetCourse retrieves a course with its instructor and lessons
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByIDWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	return course, nil
}

// ListCourses retrieves the public course catalog
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	return courses, nil
}

// ListByInstructor retrieves the courses owned by an instructor
func (s *courseServiceImpl) ListByInstructor(ctx context.Context, instructorID int64) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetByInstructorID(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("error listing instructor courses: %w", err)
	}
	return courses, nil
}

// UpdateCourse applies a partial update after the ownership check. Empty
// fields in the request leave the stored values untouched.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, courseID, userID int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	if err := s.authzService.ValidateCourseOwnership(ctx, courseID, userID); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error getting course for update: %w", err)
	}

	if strings.TrimSpace(req.Title) != "" {
		course.Title = strings.TrimSpace(req.Title)
	}
	if req.Description != "" {
		if len(strings.TrimSpace(req.Description)) < minDescriptionLength {
			return nil, fmt.Errorf("%w: description must be at least %d characters", apperrors.ErrValidationFailed, minDescriptionLength)
		}
		course.Description = req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative", apperrors.ErrValidationFailed)
		}
		course.Price = *req.Price
	}
	if req.Thumbnail != nil {
		course.ThumbnailURL = req.Thumbnail
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("course update error: %w", err)
	}

	return course, nil
}

// DeleteCourse removes a course together with its lessons and enrollments.
// The cascade runs in one transaction so no orphaned rows survive.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, courseID, userID int64) error {
	if err := s.authzService.ValidateCourseOwnership(ctx, courseID, userID); err != nil {
		return err
	}

	if err := s.courseRepo.DeleteCascade(ctx, courseID); err != nil {
		return fmt.Errorf("course deletion error: %w", err)
	}

	s.logger.Info().Int64("courseID", courseID).Int64("userID", userID).Msg("Course deleted with lessons and enrollments")
	return nil
}

// AddLesson appends a lesson to a course the user owns
func (s *courseServiceImpl) AddLesson(ctx context.Context, courseID, userID int64, req *dto.CreateLessonRequest) (*models.Lesson, error) {
	if err := s.authzService.ValidateCourseOwnership(ctx, courseID, userID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}

	lesson := &models.Lesson{
		CourseID: courseID,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		VideoURL: req.VideoURL,
	}

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("lesson creation error: %w", err)
	}

	return lesson, nil
}

// ListLessons retrieves the lessons of a course in creation order
func (s *courseServiceImpl) ListLessons(ctx context.Context, courseID int64) ([]*models.Lesson, error) {
	// Resolve the course first so a missing course reads as not-found
	// instead of an empty lesson list.
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error getting course: %w", err)
	}

	lessons, err := s.lessonRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing lessons: %w", err)
	}
	return lessons, nil
}

// getOwnedLesson loads a lesson after validating course ownership and that
// the lesson actually belongs to the course in the URL.
func (s *courseServiceImpl) getOwnedLesson(ctx context.Context, courseID, lessonID, userID int64) (*models.Lesson, error) {
	if err := s.authzService.ValidateCourseOwnership(ctx, courseID, userID); err != nil {
		return nil, err
	}

	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, apperrors.ErrLessonNotFound) {
			return nil, apperrors.ErrLessonNotFound
		}
		return nil, fmt.Errorf("error getting lesson: %w", err)
	}
	if lesson.CourseID != courseID {
		return nil, apperrors.ErrLessonNotFound
	}
	return lesson, nil
}

// UpdateLesson applies a partial update to a lesson of an owned course
func (s *courseServiceImpl) UpdateLesson(ctx context.Context, courseID, lessonID, userID int64, req *dto.UpdateLessonRequest) (*models.Lesson, error) {
	lesson, err := s.getOwnedLesson(ctx, courseID, lessonID, userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Title) != "" {
		lesson.Title = strings.TrimSpace(req.Title)
	}
	if req.Content != nil {
		lesson.Content = req.Content
	}
	if req.VideoURL != nil {
		lesson.VideoURL = req.VideoURL
	}

	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("lesson update error: %w", err)
	}

	return lesson, nil
}

// DeleteLesson removes a lesson from an owned course
func (s *courseServiceImpl) DeleteLesson(ctx context.Context, courseID, lessonID, userID int64) error {
	lesson, err := s.getOwnedLesson(ctx, courseID, lessonID, userID)
	if err != nil {
		return err
	}

	if err := s.lessonRepo.Delete(ctx, lesson.ID); err != nil {
		return fmt.Errorf("lesson deletion error: %w", err)
	}

	return nil
}
