package dto

import (
	"time"

	"github.com/emreacar/schoolhub/internal/app/models"
)

// UserResponse represents basic user information
type UserResponse struct {
	ID          int64      `json:"id"`
	SchoolID    *int64     `json:"schoolId,omitempty"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	PhoneNumber *string    `json:"phoneNumber,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

// CreateUserRequest creates a user account directly, without the invite flow.
type CreateUserRequest struct {
	Email       string          `json:"email" binding:"required,email"`
	Password    string          `json:"password" binding:"required,min=8"`
	FirstName   string          `json:"firstName" binding:"required"`
	LastName    string          `json:"lastName" binding:"required"`
	Role        models.UserRole `json:"role" binding:"required"`
	PhoneNumber *string         `json:"phoneNumber,omitempty"`
}

// UpdateUserRequest updates mutable profile fields of a user.
type UpdateUserRequest struct {
	FirstName   string  `json:"firstName" binding:"required"`
	LastName    string  `json:"lastName" binding:"required"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

// UpdateUserRoleRequest changes a user's role within the school.
type UpdateUserRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required"`
}

// ChangePasswordRequest represents a password change for the current user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// FromUser converts a model user to its response form.
func FromUser(u *models.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:          u.ID,
		SchoolID:    u.SchoolID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        string(u.Role),
		Status:      string(u.Status),
		PhoneNumber: u.PhoneNumber,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// FromUsers converts a slice of model users.
func FromUsers(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, FromUser(&users[i]))
	}
	return out
}
