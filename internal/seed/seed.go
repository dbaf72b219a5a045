package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/emreacar/schoolhub/internal/app/models"
	appRepos "github.com/emreacar/schoolhub/internal/app/repositories"
	"github.com/emreacar/schoolhub/internal/pkg/apperrors"
)

// Default super admin credentials, overridable via environment. The password
// must be changed on first login in any real deployment.
const (
	defaultSuperAdminEmail    = "admin@schoolhub.app"
	defaultSuperAdminPassword = "ChangeMe123!"
)

// CreateDefaultData bootstraps the platform super admin account. Tenant data
// (schools, users, students) is created through the API, never seeded.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	email := os.Getenv("SUPER_ADMIN_EMAIL")
	if email == "" {
		email = defaultSuperAdminEmail
	}
	password := os.Getenv("SUPER_ADMIN_PASSWORD")
	if password == "" {
		password = defaultSuperAdminPassword
	}

	existing, err := userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking for existing super admin")
		return err
	}
	if existing != nil {
		lgr.Debug().Str("email", email).Msg("Super admin already exists, skipping creation")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing super admin password")
		return err
	}

	admin := &appModels.User{
		SchoolID:     nil, // platform scope, not bound to any tenant
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    "Platform",
		LastName:     "Administrator",
		Role:         appModels.RoleSuperAdmin,
		Status:       appModels.UserStatusActive,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating super admin user")
		return err
	}

	lgr.Info().Int64("userId", admin.ID).Str("email", email).Msg("Platform super admin created")
	return nil
}
