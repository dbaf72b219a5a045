package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	authz "github.com/emreacar/schoolhub/internal/app/auth"
	"github.com/emreacar/schoolhub/internal/app/models"
	"github.com/emreacar/schoolhub/internal/app/models/dto"
	"github.com/emreacar/schoolhub/internal/app/repositories"
	"github.com/emreacar/schoolhub/internal/pkg/apperrors"
	"github.com/emreacar/schoolhub/internal/pkg/auth"
	"github.com/emreacar/schoolhub/internal/pkg/validation"
)

// UserService handles user account management within a tenant.
type UserService struct {
	userRepo  *repositories.UserRepository
	tokenRepo *repositories.TokenRepository
	guard     *authz.Guard
	logger    zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(repos *repositories.Repositories, guard *authz.Guard, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo:  repos.UserRepository,
		tokenRepo: repos.TokenRepository,
		guard:     guard,
		logger:    logger,
	}
}

func (s *UserService) authorize(ctx context.Context, actor authz.Actor, action authz.Action, schoolID int64, own authz.Ownership) error {
	decision, err := s.guard.Authorize(ctx, actor, action, authz.ResourceUsers, schoolID, own)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		s.logger.Debug().
			Str("reason", string(decision.Reason)).
			Int64("actorId", actor.UserID).
			Str("action", string(action)).
			Msg("users access denied")
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// List retrieves the users of the actor's school.
func (s *UserService) List(ctx context.Context, actor authz.Actor, filter repositories.UserFilter, page, pageSize int) ([]models.User, int64, error) {
	if err := s.authorize(ctx, actor, authz.ActionRead, actor.SchoolID, authz.Ownership{}); err != nil {
		return nil, 0, err
	}
	return s.userRepo.List(ctx, actor.SchoolID, filter, page, pageSize)
}

// Get retrieves one user of the actor's school.
func (s *UserService) Get(ctx context.Context, actor authz.Actor, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, actor.SchoolID, id)
	if err != nil {
		return nil, err
	}

	schoolID := int64(0)
	if user.SchoolID != nil {
		schoolID = *user.SchoolID
	}
	if err := s.authorize(ctx, actor, authz.ActionRead, schoolID, authz.Ownership{UserID: id}); err != nil {
		return nil, err
	}
	return user, nil
}

// Create adds a user account directly, bypassing the invitation flow.
func (s *UserService) Create(ctx context.Context, actor authz.Actor, req *dto.CreateUserRequest) (*models.User, error) {
	if err := s.authorize(ctx, actor, authz.ActionCreate, actor.SchoolID, authz.Ownership{}); err != nil {
		return nil, err
	}

	if !req.Role.IsValid() || req.Role == models.RoleSuperAdmin {
		return nil, apperrors.NewBadRequestError("invalid role")
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, apperrors.NewBadRequestError("password must be at least 8 characters")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		SchoolID:     &actor.SchoolID,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		Status:       models.UserStatusActive,
		PhoneNumber:  req.PhoneNumber,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update modifies a user's profile fields.
func (s *UserService) Update(ctx context.Context, actor authz.Actor, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, actor.SchoolID, id)
	if err != nil {
		return nil, err
	}

	schoolID := int64(0)
	if user.SchoolID != nil {
		schoolID = *user.SchoolID
	}
	if err := s.authorize(ctx, actor, authz.ActionUpdate, schoolID, authz.Ownership{UserID: id}); err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.PhoneNumber = req.PhoneNumber
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateRole changes a user's role within the school.
func (s *UserService) UpdateRole(ctx context.Context, actor authz.Actor, id int64, role models.UserRole) error {
	if err := s.authorize(ctx, actor, authz.ActionUpdate, actor.SchoolID, authz.Ownership{}); err != nil {
		return err
	}
	if !role.IsValid() || role == models.RoleSuperAdmin {
		return apperrors.NewBadRequestError("invalid role")
	}
	return s.userRepo.UpdateRole(ctx, actor.SchoolID, id, role)
}

// Deactivate suspends a user account and revokes its sessions. Users cannot
// deactivate themselves.
func (s *UserService) Deactivate(ctx context.Context, actor authz.Actor, id int64) error {
	if err := s.authorize(ctx, actor, authz.ActionDeactivate, actor.SchoolID, authz.Ownership{}); err != nil {
		return err
	}
	if id == actor.UserID {
		return apperrors.ErrCannotDeactivateSelf
	}

	if err := s.userRepo.UpdateStatus(ctx, actor.SchoolID, id, models.UserStatusInactive); err != nil {
		return err
	}
	return s.tokenRepo.RevokeAllForUser(ctx, id)
}

// Reactivate restores a deactivated account.
func (s *UserService) Reactivate(ctx context.Context, actor authz.Actor, id int64) error {
	if err := s.authorize(ctx, actor, authz.ActionUpdate, actor.SchoolID, authz.Ownership{}); err != nil {
		return err
	}
	return s.userRepo.UpdateStatus(ctx, actor.SchoolID, id, models.UserStatusActive)
}
