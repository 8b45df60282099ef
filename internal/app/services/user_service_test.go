package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/emre/coursehub/internal/app/models"
	"github.com/emre/coursehub/internal/app/models/dto"
	"github.com/emre/coursehub/internal/pkg/apperrors"
)

type userTestEnv struct {
	users   *fakeUserRepo
	courses *fakeCourseRepo
	svc     UserService

	admin      *models.User
	instructor *models.User
	student    *models.User
}

func newUserTestEnv(t *testing.T) *userTestEnv {
	t.Helper()

	env := &userTestEnv{
		users:   newFakeUserRepo(),
		courses: newFakeCourseRepo(),
	}
	env.courses.users = env.users

	seed := func(name, email string, role models.RoleType) *models.User {
		u := &models.User{Name: name, Email: email, Password: "x", RoleType: role}
		if err := env.users.Create(context.Background(), u); err != nil {
			t.Fatalf("seeding %s: %v", email, err)
		}
		return u
	}
	env.admin = seed("Ada Min", "ada@example.com", models.RoleAdmin)
	env.instructor = seed("Ina Structor", "ina@example.com", models.RoleInstructor)
	env.student = seed("Stu Dent", "stu@example.com", models.RoleStudent)

	env.svc = NewUserService(env.users, env.courses, zerolog.Nop())
	return env
}

func TestGetUserByIDNotFound(t *testing.T) {
	env := newUserTestEnv(t)

	if _, err := env.svc.GetUserByID(context.Background(), 999); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetAllUsersReturnsEveryAccount(t *testing.T) {
	env := newUserTestEnv(t)

	users, err := env.svc.GetAllUsers(context.Background())
	if err != nil {
		t.Fatalf("GetAllUsers returned error: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("expected 3 users, got %d", len(users))
	}
}

func TestUpdateUserChangesRole(t *testing.T) {
	env := newUserTestEnv(t)

	updated, err := env.svc.UpdateUser(context.Background(), env.student.ID, &dto.UpdateUserRequest{
		RoleType: models.RoleInstructor,
	})
	if err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}
	if updated.RoleType != models.RoleInstructor {
		t.Errorf("expected role %s, got %s", models.RoleInstructor, updated.RoleType)
	}
	if updated.Name != env.student.Name || updated.Email != env.student.Email {
		t.Errorf("untouched fields changed: %+v", updated)
	}

	stored, _ := env.users.GetByID(context.Background(), env.student.ID)
	if stored.RoleType != models.RoleInstructor {
		t.Errorf("role change not persisted, got %s", stored.RoleType)
	}
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	env := newUserTestEnv(t)

	_, err := env.svc.UpdateUser(context.Background(), env.student.ID, &dto.UpdateUserRequest{
		RoleType: models.RoleType("SUPERUSER"),
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestUpdateUserRejectsTakenEmail(t *testing.T) {
	env := newUserTestEnv(t)

	_, err := env.svc.UpdateUser(context.Background(), env.student.ID, &dto.UpdateUserRequest{
		Email: env.instructor.Email,
	})
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestUpdateUserKeepsOwnEmail(t *testing.T) {
	env := newUserTestEnv(t)

	updated, err := env.svc.UpdateUser(context.Background(), env.student.ID, &dto.UpdateUserRequest{
		Name:  "Stuart Dent",
		Email: env.student.Email,
	})
	if err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}
	if updated.Name != "Stuart Dent" {
		t.Errorf("expected updated name, got %q", updated.Name)
	}
}

func TestUpdateMissingUserIsNotFound(t *testing.T) {
	env := newUserTestEnv(t)

	if _, err := env.svc.UpdateUser(context.Background(), 999, &dto.UpdateUserRequest{Name: "x"}); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUserRemovesStudent(t *testing.T) {
	env := newUserTestEnv(t)

	if err := env.svc.DeleteUser(context.Background(), env.student.ID); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}
	if _, err := env.users.GetByID(context.Background(), env.student.ID); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("expected user to be gone, got %v", err)
	}
}

// countFailingCourseRepo fails any ownership count, proving the caller
// never consults it.
type countFailingCourseRepo struct {
	*fakeCourseRepo
}

func (r *countFailingCourseRepo) CountByInstructorID(context.Context, int64) (int, error) {
	return 0, errors.New("ownership count must not be consulted")
}

func TestDeleteStudentSkipsOwnershipCount(t *testing.T) {
	env := newUserTestEnv(t)
	svc := NewUserService(env.users, &countFailingCourseRepo{env.courses}, zerolog.Nop())

	if err := svc.DeleteUser(context.Background(), env.student.ID); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}
	if err := svc.DeleteUser(context.Background(), env.instructor.ID); err == nil {
		t.Fatal("expected instructor deletion to consult the ownership count")
	}
}

func TestDeleteUserRefusesAdmins(t *testing.T) {
	env := newUserTestEnv(t)

	if err := env.svc.DeleteUser(context.Background(), env.admin.ID); !errors.Is(err, apperrors.ErrCannotDeleteAdmin) {
		t.Fatalf("expected ErrCannotDeleteAdmin, got %v", err)
	}
	if _, err := env.users.GetByID(context.Background(), env.admin.ID); err != nil {
		t.Errorf("admin account should still exist, got %v", err)
	}
}

func TestDeleteUserRefusesCourseOwners(t *testing.T) {
	env := newUserTestEnv(t)

	course := &models.Course{Title: "Intro to Go", Description: "d", InstructorID: env.instructor.ID}
	if err := env.courses.Create(context.Background(), course); err != nil {
		t.Fatalf("seeding course: %v", err)
	}

	if err := env.svc.DeleteUser(context.Background(), env.instructor.ID); !errors.Is(err, apperrors.ErrUserOwnsCourses) {
		t.Fatalf("expected ErrUserOwnsCourses, got %v", err)
	}

	stored, err := env.courses.GetByID(context.Background(), course.ID)
	if err != nil || stored.InstructorID != env.instructor.ID {
		t.Errorf("course ownership disturbed: %+v err=%v", stored, err)
	}
}

func TestDeleteMissingUserIsNotFound(t *testing.T) {
	env := newUserTestEnv(t)

	if err := env.svc.DeleteUser(context.Background(), 999); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
