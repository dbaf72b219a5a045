package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/emreacar/schoolhub/internal/app/models"
	"github.com/emreacar/schoolhub/internal/app/models/dto"
	"github.com/emreacar/schoolhub/internal/app/repositories"
	"github.com/emreacar/schoolhub/internal/db"
	"github.com/emreacar/schoolhub/internal/pkg/apperrors"
	"github.com/emreacar/schoolhub/internal/pkg/auth"
	"github.com/emreacar/schoolhub/internal/pkg/email"
	"github.com/emreacar/schoolhub/internal/pkg/validation"
)

const invitationTTL = 7 * 24 * time.Hour

// AuthService handles registration, login, token refresh and the invitation
// flow.
type AuthService struct {
	pool           *pgxpool.Pool
	userRepo       *repositories.UserRepository
	schoolRepo     *repositories.SchoolRepository
	invitationRepo *repositories.InvitationRepository
	tokenRepo      *repositories.TokenRepository
	jwtService     *auth.JWTService
	emailService   email.EmailService
	logger         zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	pool *pgxpool.Pool,
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		pool:           pool,
		userRepo:       repos.UserRepository,
		schoolRepo:     repos.SchoolRepository,
		invitationRepo: repos.InvitationRepository,
		tokenRepo:      repos.TokenRepository,
		jwtService:     jwtService,
		emailService:   emailService,
		logger:         logger,
	}
}

// RegisterSchool creates a school tenant together with its admin account in
// one transaction. The admin's tenant is stamped after the school row exists.
func (s *AuthService) RegisterSchool(ctx context.Context, req *dto.RegisterSchoolRequest) (*models.School, *models.User, error) {
	code := strings.ToUpper(strings.TrimSpace(req.SchoolCode))
	if !validation.IsValidSchoolCode(code) {
		return nil, nil, apperrors.NewBadRequestError("school code must be 3-12 uppercase letters or digits")
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, nil, apperrors.NewBadRequestError("password must be at least 8 characters")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	admin := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.AdminEmail)),
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.RoleSchoolAdmin,
		Status:       models.UserStatusActive,
	}
	if req.Phone != "" {
		admin.PhoneNumber = &req.Phone
	}

	school := &models.School{
		Name:           req.SchoolName,
		Code:           code,
		Status:         models.SchoolStatusPendingSetup,
		SetupCompleted: false,
	}
	if req.Address != "" {
		school.Address = &req.Address
	}

	err = db.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (email, password_hash, first_name, last_name, role, status, phone_number)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`, admin.Email, admin.PasswordHash, admin.FirstName, admin.LastName,
			admin.Role, admin.Status, admin.PhoneNumber).
			Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return apperrors.ErrEmailAlreadyExists
			}
			return fmt.Errorf("error creating admin user: %w", err)
		}

		school.AdminID = admin.ID
		if err := s.schoolRepo.Create(ctx, tx, school); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`UPDATE users SET school_id = $1 WHERE id = $2`, school.ID, admin.ID); err != nil {
			return fmt.Errorf("error stamping admin tenant: %w", err)
		}
		admin.SchoolID = &school.ID
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Int64("schoolId", school.ID).Str("code", school.Code).Msg("School registered")
	return school, admin, nil
}

// Login verifies credentials and issues a token pair. Inactive accounts are
// rejected before the password check result is revealed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == apperrors.ErrUserNotFound {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if user.Status != models.UserStatusActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to stamp last login")
	}

	return user, tokens, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The old
// refresh token is revoked (rotation).
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.Get(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, 0, stored.UserID)
	if err != nil {
		return nil, err
	}
	if user.Status != models.UserStatusActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.Revoke(ctx, refreshToken)
}

// GetProfile retrieves the authenticated user's own record.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, 0, userID)
}

// ChangePassword verifies the current password and replaces it. All refresh
// tokens are revoked afterwards.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, 0, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}
	if !validation.IsValidPassword(newPassword) {
		return apperrors.NewBadRequestError("password must be at least 8 characters")
	}

	newHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, newHash); err != nil {
		return err
	}

	return s.tokenRepo.RevokeAllForUser(ctx, userID)
}

// Invite creates a pending invitation and mails the accept link. Emails that
// already belong to an account or have a pending invitation are rejected.
func (s *AuthService) Invite(ctx context.Context, schoolID, invitedBy int64, req *dto.InviteUserRequest) (*models.Invitation, error) {
	if !req.Role.IsValid() || req.Role == models.RoleSuperAdmin {
		return nil, apperrors.NewBadRequestError("invalid role for invitation")
	}

	address := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepo.GetByEmail(ctx, address); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if err != apperrors.ErrUserNotFound {
		return nil, err
	}

	pending, err := s.invitationRepo.HasPendingForEmail(ctx, schoolID, address)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperrors.NewConflictError("a pending invitation already exists for this email")
	}

	school, err := s.schoolRepo.GetByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	inv := &models.Invitation{
		SchoolID:  schoolID,
		Email:     address,
		Role:      req.Role,
		Token:     uuid.NewString(),
		Status:    models.InvitationPending,
		InvitedBy: invitedBy,
		ExpiresAt: time.Now().Add(invitationTTL),
	}
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.emailService.SendInvitationEmail(inv.Email, school.Name, string(inv.Role), inv.Token); err != nil {
		s.logger.Error().Err(err).Str("email", inv.Email).Msg("Failed to send invitation email")
	}

	return inv, nil
}

// ListInvitations retrieves a school's pending invitations.
func (s *AuthService) ListInvitations(ctx context.Context, schoolID int64) ([]models.Invitation, error) {
	return s.invitationRepo.ListPending(ctx, schoolID)
}

// InspectInvitation looks up a pending invitation by its token so the signup
// form can prefill email and role before the account exists.
func (s *AuthService) InspectInvitation(ctx context.Context, token string) (*models.Invitation, error) {
	inv, err := s.invitationRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	switch inv.Status {
	case models.InvitationPending:
		// proceed
	case models.InvitationAccepted:
		return nil, apperrors.ErrInvitationUsed
	default:
		return nil, apperrors.ErrInvitationNotFound
	}

	if time.Now().After(inv.ExpiresAt) {
		return nil, apperrors.ErrInvitationExpired
	}
	return inv, nil
}

// AcceptInvitation completes an invitation: creates the account with the
// invited role and tenant, and marks the invitation accepted.
func (s *AuthService) AcceptInvitation(ctx context.Context, req *dto.AcceptInvitationRequest) (*models.User, *dto.TokenResponse, error) {
	inv, err := s.invitationRepo.GetByToken(ctx, req.Token)
	if err != nil {
		return nil, nil, err
	}

	switch inv.Status {
	case models.InvitationPending:
		// proceed
	case models.InvitationAccepted:
		return nil, nil, apperrors.ErrInvitationUsed
	default:
		return nil, nil, apperrors.ErrInvitationNotFound
	}

	if time.Now().After(inv.ExpiresAt) {
		if err := s.invitationRepo.UpdateStatus(ctx, inv.ID, models.InvitationExpired); err != nil {
			s.logger.Warn().Err(err).Int64("invitationId", inv.ID).Msg("Failed to mark invitation expired")
		}
		return nil, nil, apperrors.ErrInvitationExpired
	}

	if !validation.IsValidPassword(req.Password) {
		return nil, nil, apperrors.NewBadRequestError("password must be at least 8 characters")
	}
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		SchoolID:     &inv.SchoolID,
		Email:        inv.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         inv.Role,
		Status:       models.UserStatusActive,
	}
	if req.Phone != "" {
		user.PhoneNumber = &req.Phone
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	if err := s.invitationRepo.UpdateStatus(ctx, inv.ID, models.InvitationAccepted); err != nil {
		return nil, nil, err
	}

	if school, err := s.schoolRepo.GetByID(ctx, inv.SchoolID); err == nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.FullName(), school.Name); err != nil {
			s.logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send welcome email")
		}
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.Store(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(expiresIn),
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: int64(refreshExpiresIn),
	}, nil
}
