package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/emre/coursehub/internal/app/models"
	"github.com/emre/coursehub/internal/pkg/apperrors"
)

// Minimal stub repositories. Only the lookups the authorization checks
// perform are implemented; everything else panics to catch accidental use.

type stubUserRepo struct {
	users map[int64]*models.User
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) Create(context.Context, *models.User) error { panic("not implemented") }
func (r *stubUserRepo) GetByEmail(context.Context, string) (*models.User, error) {
	panic("not implemented")
}
func (r *stubUserRepo) GetAll(context.Context) ([]*models.User, error) { panic("not implemented") }
func (r *stubUserRepo) EmailExists(context.Context, string) (bool, error) {
	panic("not implemented")
}
func (r *stubUserRepo) Update(context.Context, *models.User) error { panic("not implemented") }
func (r *stubUserRepo) Delete(context.Context, int64) error        { panic("not implemented") }

type stubCourseRepo struct {
	courses map[int64]*models.Course
}

func (r *stubCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return c, nil
}

func (r *stubCourseRepo) Create(context.Context, *models.Course) error { panic("not implemented") }
func (r *stubCourseRepo) GetByIDWithDetails(context.Context, int64) (*models.Course, error) {
	panic("not implemented")
}
func (r *stubCourseRepo) GetAll(context.Context) ([]*models.Course, error) {
	panic("not implemented")
}
func (r *stubCourseRepo) GetByInstructorID(context.Context, int64) ([]*models.Course, error) {
	panic("not implemented")
}
func (r *stubCourseRepo) GetEnrolledByStudentID(context.Context, int64) ([]*models.Course, error) {
	panic("not implemented")
}
func (r *stubCourseRepo) CountByInstructorID(context.Context, int64) (int, error) {
	panic("not implemented")
}
func (r *stubCourseRepo) Update(context.Context, *models.Course) error { panic("not implemented") }
func (r *stubCourseRepo) DeleteCascade(context.Context, int64) error   { panic("not implemented") }

const (
	ownerID    = int64(1)
	strangerID = int64(2)
	adminID    = int64(3)
	courseID   = int64(10)
)

func newTestAuthzService() *AuthorizationService {
	users := &stubUserRepo{users: map[int64]*models.User{
		ownerID:    {ID: ownerID, RoleType: models.RoleInstructor},
		strangerID: {ID: strangerID, RoleType: models.RoleInstructor},
		adminID:    {ID: adminID, RoleType: models.RoleAdmin},
	}}
	courses := &stubCourseRepo{courses: map[int64]*models.Course{
		courseID: {ID: courseID, InstructorID: ownerID},
	}}
	return NewAuthorizationService(users, courses)
}

func TestCanModifyCourseOwner(t *testing.T) {
	svc := newTestAuthzService()

	can, err := svc.CanModifyCourse(context.Background(), courseID, ownerID)
	if err != nil {
		t.Fatalf("CanModifyCourse returned error: %v", err)
	}
	if !can {
		t.Error("expected owner to be allowed")
	}
}

func TestCanModifyCourseStrangerDenied(t *testing.T) {
	svc := newTestAuthzService()

	can, err := svc.CanModifyCourse(context.Background(), courseID, strangerID)
	if err != nil {
		t.Fatalf("CanModifyCourse returned error: %v", err)
	}
	if can {
		t.Error("expected non-owner to be denied")
	}
}

func TestCanModifyCourseAdminOverride(t *testing.T) {
	svc := newTestAuthzService()

	can, err := svc.CanModifyCourse(context.Background(), courseID, adminID)
	if err != nil {
		t.Fatalf("CanModifyCourse returned error: %v", err)
	}
	if !can {
		t.Error("expected admin to be allowed on any course")
	}
}

func TestCanModifyMissingCourseIsNotFound(t *testing.T) {
	svc := newTestAuthzService()

	// Existence comes before ownership, even for users who would be denied.
	if _, err := svc.CanModifyCourse(context.Background(), 999, strangerID); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestCanModifyCourseUnknownUser(t *testing.T) {
	svc := newTestAuthzService()

	if _, err := svc.CanModifyCourse(context.Background(), courseID, 999); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestValidateCourseOwnershipDenies(t *testing.T) {
	svc := newTestAuthzService()

	if err := svc.ValidateCourseOwnership(context.Background(), courseID, strangerID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if err := svc.ValidateCourseOwnership(context.Background(), courseID, ownerID); err != nil {
		t.Fatalf("expected owner to pass, got %v", err)
	}
}
