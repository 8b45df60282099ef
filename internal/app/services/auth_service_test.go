package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/coursehub/internal/app/models"
	"github.com/emre/coursehub/internal/app/models/dto"
	"github.com/emre/coursehub/internal/pkg/apperrors"
	"github.com/emre/coursehub/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "coursehub.test",
	})
}

func newTestAuthService(users *fakeUserRepo) AuthService {
	return NewAuthService(users, newTestJWTService(), zerolog.Nop())
}

func TestRegisterIssuesTokenForNewStudent(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret12",
		RoleType: models.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected a non-empty access token")
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("expected token type Bearer, got %q", resp.TokenType)
	}
	if resp.User.Role != models.RoleStudent {
		t.Errorf("expected role %s, got %s", models.RoleStudent, resp.User.Role)
	}
	if resp.User.ID == 0 {
		t.Error("expected a persisted user id")
	}

	stored, err := users.GetByID(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.Password == "secret12" {
		t.Error("password must not be stored in plaintext")
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Mallory",
		Email:    "mallory@example.com",
		Password: "secret12",
		RoleType: models.RoleAdmin,
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRegisterRejectsWeakPasswords(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	cases := []struct {
		name     string
		password string
	}{
		{"too short", "ab1"},
		{"no digit", "abcdefgh"},
		{"no letter", "12345678"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &dto.RegisterRequest{
				Name:     "Jane Doe",
				Email:    "jane@example.com",
				Password: tc.password,
				RoleType: models.RoleStudent,
			})
			if !errors.Is(err, ErrInvalidPassword) && !errors.Is(err, ErrAuthValidation) {
				t.Fatalf("expected a password validation error, got %v", err)
			}
		})
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	req := &dto.RegisterRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret12",
		RoleType: models.RoleInstructor,
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLoginSucceedsWithCorrectCredentials(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	if _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret12",
		RoleType: models.RoleInstructor,
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "secret12",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.User.Email != "jane@example.com" {
		t.Errorf("unexpected identity email %q", resp.User.Email)
	}

	claims, err := newTestJWTService().ValidateAndExtractClaims(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token did not validate: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("token subject %d does not match identity %d", claims.UserID, resp.User.ID)
	}
}

func TestLoginHidesWhetherAccountExists(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	if _, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret12",
		RoleType: models.RoleStudent,
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	// Wrong password and unknown account must be indistinguishable.
	_, wrongPassErr := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrongpass1",
	})
	_, unknownErr := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret12",
	})

	if !errors.Is(wrongPassErr, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassErr)
	}
	if !errors.Is(unknownErr, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown account: expected ErrInvalidCredentials, got %v", unknownErr)
	}
}

func TestGetProfileReturnsUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret12",
		RoleType: models.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	user, err := svc.GetProfile(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Errorf("unexpected email %q", user.Email)
	}

	if _, err := svc.GetProfile(context.Background(), 999); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for missing profile, got %v", err)
	}
}
