package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/emre/coursehub/internal/app/models"
	"github.com/emre/coursehub/internal/app/repositories"
	"github.com/emre/coursehub/internal/pkg/apperrors"
	"github.com/emre/coursehub/internal/pkg/logger"
)

// AuthorizationService answers ownership questions for protected resources.
// Existence is always checked before ownership, so a missing course surfaces
// as not-found rather than leaking a permission error.
type AuthorizationService struct {
	userRepo   repositories.IUserRepository
	courseRepo repositories.ICourseRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo repositories.IUserRepository, courseRepo repositories.ICourseRepository) *AuthorizationService {
	return &AuthorizationService{
		userRepo:   userRepo,
		courseRepo: courseRepo,
	}
}

// CanModifyCourse reports whether the user may modify the given course.
// Admins may modify any course; instructors only their own. The course is
// loaded first so callers get ErrCourseNotFound for missing resources.
func (s *AuthorizationService) CanModifyCourse(ctx context.Context, courseID, userID int64) (bool, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return false, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error getting course in CanModifyCourse")
		return false, fmt.Errorf("failed to check course ownership: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return false, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user in CanModifyCourse")
		return false, fmt.Errorf("failed to check course ownership: %w", err)
	}

	if user.RoleType == models.RoleAdmin {
		return true, nil
	}

	return course.InstructorID == userID, nil
}

// ValidateCourseOwnership validates that the user may modify the course,
// returning ErrPermissionDenied otherwise.
func (s *AuthorizationService) ValidateCourseOwnership(ctx context.Context, courseID, userID int64) error {
	canModify, err := s.CanModifyCourse(ctx, courseID, userID)
	if err != nil {
		return err
	}
	if !canModify {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// GetUserInfo returns user information
func (s *AuthorizationService) GetUserInfo(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user by ID in GetUserInfo")
		return nil, fmt.Errorf("failed to get user information: %w", err)
	}
	return user, nil
}
