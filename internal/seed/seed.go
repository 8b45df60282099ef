package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/emre/coursehub/internal/app/models"
	appRepos "github.com/emre/coursehub/internal/app/repositories"
	"github.com/emre/coursehub/internal/pkg/auth"
)

const defaultAdminEmail = "admin@coursehub.app"

// CreateDefaultData seeds the default admin account if no such user exists.
// Admin accounts are never self-registered, so a fresh database gets one here.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking default data...")

	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}
	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}

	password := os.Getenv("ADMIN_INITIAL_PASSWORD")
	if password == "" {
		password = "ChangeMe123!"
		lgr.Warn().Msg("ADMIN_INITIAL_PASSWORD not set, seeding admin with the default password")
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Name:     "System Administrator",
		Email:    defaultAdminEmail,
		Password: hashedPassword,
		RoleType: appModels.RoleAdmin,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return errors.Join(errors.New("failed to seed admin user"), err)
	}

	lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
	return nil
}
