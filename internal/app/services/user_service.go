package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emre/coursehub/internal/app/models"
	"github.com/emre/coursehub/internal/app/models/dto"
	"github.com/emre/coursehub/internal/app/repositories"
	"github.com/emre/coursehub/internal/pkg/apperrors"
)

// UserService defines the interface for admin-side user management
type UserService interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo   repositories.IUserRepository
	courseRepo repositories.ICourseRepository
	logger     zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.IUserRepository,
	courseRepo repositories.ICourseRepository,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:   userRepo,
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// GetUserByID retrieves a user by ID
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return user, nil
}

// GetAllUsers retrieves all users
func (s *userServiceImpl) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

// UpdateUser applies a partial update to a user record. Role changes come
// through here only, and only admins reach this path.
func (s *userServiceImpl) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error finding user for update: %w", err)
	}

	if strings.TrimSpace(req.Name) != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" && email != user.Email {
		exists, err := s.userRepo.EmailExists(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("error checking if email exists: %w", err)
		}
		if exists {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		user.Email = email
	}
	if req.RoleType != "" {
		if !models.ValidRole(req.RoleType) {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, req.RoleType)
		}
		user.RoleType = req.RoleType
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("user update error: %w", err)
	}

	return user, nil
}

// DeleteUser removes a user account. Admin accounts cannot be deleted, and
// a user still owning courses must have those courses reassigned or removed
// first so no course ever points at a missing instructor.
func (s *userServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error finding user for deletion: %w", err)
	}

	if user.RoleType == models.RoleAdmin {
		return apperrors.ErrCannotDeleteAdmin
	}

	// Only authoring roles can hold courses, so students skip the lookup.
	if user.RoleType.CanAuthorCourses() {
		owned, err := s.courseRepo.CountByInstructorID(ctx, id)
		if err != nil {
			return fmt.Errorf("error counting owned courses: %w", err)
		}
		if owned > 0 {
			return apperrors.ErrUserOwnsCourses
		}
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("user deletion error: %w", err)
	}

	s.logger.Info().Int64("userID", id).Msg("User deleted")
	return nil
}
