package models

import (
	"time"
)

// UserRole enumerates every role the platform knows about. Permissions for a
// role live in the capability table in internal/app/auth, not here.
type UserRole string

const (
	RoleSuperAdmin     UserRole = "super_admin"
	RoleSchoolAdmin    UserRole = "school_admin"
	RolePrincipal      UserRole = "principal"
	RoleTeacher        UserRole = "teacher"
	RoleParent         UserRole = "parent"
	RoleStudent        UserRole = "student"
	RoleFinanceOfficer UserRole = "finance_officer"
	RoleStaff          UserRole = "staff"
)

// ValidRoles lists the accepted role values for request validation.
var ValidRoles = []UserRole{
	RoleSuperAdmin, RoleSchoolAdmin, RolePrincipal, RoleTeacher,
	RoleParent, RoleStudent, RoleFinanceOfficer, RoleStaff,
}

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	for _, role := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// UserStatus defines the lifecycle state of a user account. Accounts are
// deactivated, never hard-deleted.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusPending   UserStatus = "pending"
	UserStatusSuspended UserStatus = "suspended"
)

// User defines the user model based on the 'users' table.
// SchoolID is nil only for super admins, which operate outside a tenant.
type User struct {
	ID           int64      `json:"id" db:"id" example:"1"`
	SchoolID     *int64     `json:"schoolId,omitempty" db:"school_id" example:"1"`
	Email        string     `json:"email" db:"email" example:"admin@greenfield.edu"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FirstName    string     `json:"firstName" db:"first_name" example:"Jane"`
	LastName     string     `json:"lastName" db:"last_name" example:"Doe"`
	Role         UserRole   `json:"role" db:"role" example:"teacher"`
	Status       UserStatus `json:"status" db:"status" example:"active"`
	PhoneNumber  *string    `json:"phoneNumber,omitempty" db:"phone_number"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}

// FullName returns the display name used in rosters and summaries.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// InvitationStatus tracks the lifecycle of an invitation.
type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationExpired   InvitationStatus = "expired"
	InvitationCancelled InvitationStatus = "cancelled"
)

// Invitation defines a pending staff/parent/student invitation into a school.
type Invitation struct {
	ID        int64            `json:"id" db:"id"`
	SchoolID  int64            `json:"schoolId" db:"school_id"`
	Email     string           `json:"email" db:"email"`
	Role      UserRole         `json:"role" db:"role"`
	Token     string           `json:"-" db:"token"`
	Status    InvitationStatus `json:"status" db:"status"`
	InvitedBy int64            `json:"invitedBy" db:"invited_by"`
	ExpiresAt time.Time        `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}

// RefreshToken defines a stored refresh token based on the 'refresh_tokens' table.
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"-" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
