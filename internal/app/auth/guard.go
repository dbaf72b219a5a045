package auth

import (
	"context"

	"github.com/emreacar/schoolhub/internal/app/models"
)

// DenyReason codes why an authorization request was refused. Reasons are for
// internal decisions and logs only; the HTTP layer collapses all of them into
// one undifferentiated access-denied response.
type DenyReason string

const (
	DenyCrossTenant     DenyReason = "cross_tenant"
	DenyForbiddenAction DenyReason = "forbidden_action"
	DenyNotOwner        DenyReason = "not_owner"
)

// Decision is the result of an authorization check.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Allow returns a permitting decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a refusing decision with the given reason.
func Deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Actor is the authenticated identity a request acts as, resolved by the JWT
// middleware. SchoolID is 0 for super admins operating outside a tenant.
type Actor struct {
	UserID   int64
	SchoolID int64
	Role     models.UserRole
}

// Ownership names the owning relation of the target entity, when one exists.
// Callers fill the field matching the resource: StudentID for records that
// belong to a student, ClassID for class-scoped operations, UserID for a
// user's own account records. A zero Ownership means the operation has no
// single owned target (e.g. tenant-wide listing); the caller is then
// responsible for scoping the query itself.
type Ownership struct {
	StudentID int64
	ClassID   int64
	UserID    int64
}

func (o Ownership) isZero() bool {
	return o.StudentID == 0 && o.ClassID == 0 && o.UserID == 0
}

// OwnershipResolver answers whether a concrete ownership relation holds.
// Implemented by the repository layer; the guard never re-derives relations
// ad hoc per resource type.
type OwnershipResolver interface {
	// ParentHasStudent reports whether a parent_students link exists.
	ParentHasStudent(ctx context.Context, parentID, studentID int64) (bool, error)
	// StudentOwnedByUser reports whether the student record is linked to the
	// given user account.
	StudentOwnedByUser(ctx context.Context, userID, studentID int64) (bool, error)
	// TeacherAssignedToClass reports whether the teacher is assigned to the
	// class through a section or a class-subject assignment.
	TeacherAssignedToClass(ctx context.Context, teacherID, classID int64) (bool, error)
}

// Guard is the single authorization entry point every resource handler calls
// before touching storage. It holds no per-request state; Authorize is a pure
// function of its inputs and the (read-only) resolver lookups.
type Guard struct {
	resolver OwnershipResolver
}

// NewGuard creates a Guard backed by the given ownership resolver.
func NewGuard(resolver OwnershipResolver) *Guard {
	return &Guard{resolver: resolver}
}

// Authorize checks action on a resource owned by tenant resourceSchoolID.
//
// The check order is load-bearing: tenant isolation runs first and
// unconditionally, so a misconfigured permission table can never leak
// cross-tenant data. Role capability is checked second, ownership last.
// Resolver errors propagate unchanged; the guard adds no masking.
func (g *Guard) Authorize(ctx context.Context, actor Actor, action Action, resource Resource, resourceSchoolID int64, own Ownership) (Decision, error) {
	if resourceSchoolID != actor.SchoolID {
		return Deny(DenyCrossTenant), nil
	}

	if !RoleAllows(actor.Role, resource, action) {
		return Deny(DenyForbiddenAction), nil
	}

	if ownershipScoped(actor.Role) && !own.isZero() {
		owns, err := g.resolveOwnership(ctx, actor, own)
		if err != nil {
			return Decision{}, err
		}
		if !owns {
			return Deny(DenyNotOwner), nil
		}
	}

	return Allow(), nil
}

func (g *Guard) resolveOwnership(ctx context.Context, actor Actor, own Ownership) (bool, error) {
	switch actor.Role {
	case models.RoleParent:
		if own.StudentID == 0 {
			return false, nil
		}
		return g.resolver.ParentHasStudent(ctx, actor.UserID, own.StudentID)

	case models.RoleStudent:
		if own.UserID != 0 {
			return own.UserID == actor.UserID, nil
		}
		if own.StudentID == 0 {
			return false, nil
		}
		return g.resolver.StudentOwnedByUser(ctx, actor.UserID, own.StudentID)

	case models.RoleTeacher:
		if own.UserID != 0 && own.ClassID == 0 && own.StudentID == 0 {
			return own.UserID == actor.UserID, nil
		}
		if own.ClassID == 0 {
			return false, nil
		}
		return g.resolver.TeacherAssignedToClass(ctx, actor.UserID, own.ClassID)
	}

	// Non-ownership-scoped roles never reach here.
	return true, nil
}
