package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emreacar/schoolhub/internal/app/models/dto"
	"github.com/emreacar/schoolhub/internal/app/services"
	"github.com/emreacar/schoolhub/internal/middleware"
)

// AuthController handles registration, login, tokens and invitations.
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// RegisterSchool registers a new school tenant with its admin account
// @Summary Register a school
// @Description Creates a new school together with its administrator account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterSchoolRequest true "School and admin details"
// @Success 201 {object} dto.APIResponse{data=dto.SchoolResponse} "School registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 409 {object} dto.ErrorResponse "School code or email already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register-school [post]
func (c *AuthController) RegisterSchool(ctx *gin.Context) {
	var req dto.RegisterSchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid registration request")
		return
	}

	school, admin, err := c.authService.RegisterSchool(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("schoolId", school.ID).
		Str("code", school.Code).
		Int64("adminId", admin.ID).
		Msg("school registered")

	response := gin.H{
		"school": dto.FromSchool(school),
		"admin":  dto.FromUser(admin),
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response, "School registered successfully"))
}

// Login authenticates a user
// @Summary Login
// @Description Authenticates a user with email and password and returns a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials or inactive account"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid login request")
		return
	}

	user, tokens, err := c.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.AuthResponse{
		Token: *tokens,
		User:  dto.FromUser(user),
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response, "Login successful"))
}

// RefreshToken exchanges a refresh token for a new token pair
// @Summary Refresh token
// @Description Exchanges a valid refresh token for a new access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Token refreshed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid, expired or revoked refresh token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid refresh request")
		return
	}

	tokens, err := c.authService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(tokens, "Token refreshed successfully"))
}

// Logout revokes the caller's refresh token
// @Summary Logout
// @Description Revokes the given refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RefreshTokenRequest true "Refresh token to revoke"
// @Success 200 {object} dto.APIResponse "Logged out successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid logout request")
		return
	}

	if err := c.authService.Logout(ctx, req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Logged out successfully"))
}

// GetProfile retrieves the authenticated user's profile
// @Summary Get own profile
// @Description Retrieves the profile of the currently authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/me [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	user, err := c.authService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromUser(user), "Profile retrieved successfully"))
}

// ChangePassword changes the authenticated user's password
// @Summary Change password
// @Description Changes the password of the currently authenticated user and revokes existing refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.APIResponse "Password changed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or weak password"
// @Failure 401 {object} dto.ErrorResponse "Wrong current password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/change-password [post]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid password change request")
		return
	}

	if err := c.authService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Password changed successfully"))
}

// InviteUser invites a user into the caller's school
// @Summary Invite a user
// @Description Creates an invitation for a new staff member, teacher, parent or student account
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.InviteUserRequest true "Invitee email and role"
// @Success 201 {object} dto.APIResponse{data=dto.InvitationResponse} "Invitation created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or role"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 409 {object} dto.ErrorResponse "User already exists or already invited"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/invitations [post]
func (c *AuthController) InviteUser(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.InviteUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid invitation request")
		return
	}

	invitation, err := c.authService.Invite(ctx, actor.SchoolID, actor.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromInvitation(invitation), "Invitation created successfully"))
}

// ListInvitations lists pending invitations of the caller's school
// @Summary List pending invitations
// @Description Retrieves the pending invitations of the caller's school
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.InvitationResponse} "Invitations retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/invitations [get]
func (c *AuthController) ListInvitations(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	invitations, err := c.authService.ListInvitations(ctx, actor.SchoolID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.InvitationResponse, 0, len(invitations))
	for i := range invitations {
		responses = append(responses, dto.FromInvitation(&invitations[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses, "Invitations retrieved successfully"))
}

// AcceptInvitation completes an invitation
// @Summary Accept an invitation
// @Description Creates the invited account and returns a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.AcceptInvitationRequest true "Invitation token and account details"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "Account created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Failure 409 {object} dto.ErrorResponse "Invitation already used"
// @Failure 410 {object} dto.ErrorResponse "Invitation expired"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/invitations/accept [post]
func (c *AuthController) AcceptInvitation(ctx *gin.Context) {
	var req dto.AcceptInvitationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid invitation acceptance request")
		return
	}

	user, tokens, err := c.authService.AcceptInvitation(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.AuthResponse{
		Token: *tokens,
		User:  dto.FromUser(user),
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response, "Account created successfully"))
}

// GetInvitation inspects a pending invitation
// @Summary Inspect an invitation
// @Description Retrieves a pending invitation by token so the signup form can prefill email and role
// @Tags auth
// @Produce json
// @Param token path string true "Invitation token"
// @Success 200 {object} dto.APIResponse{data=dto.InvitationResponse} "Invitation retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Failure 409 {object} dto.ErrorResponse "Invitation already used"
// @Failure 410 {object} dto.ErrorResponse "Invitation expired"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/invitations/{token} [get]
func (c *AuthController) GetInvitation(ctx *gin.Context) {
	token := ctx.Param("token")
	if token == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invitation token is required")))
		return
	}

	inv, err := c.authService.InspectInvitation(ctx, token)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromInvitation(inv), "Invitation retrieved successfully"))
}
