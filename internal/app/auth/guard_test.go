package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emreacar/schoolhub/internal/app/models"
)

// fakeResolver resolves ownership from in-memory relation sets.
type fakeResolver struct {
	parentLinks  map[[2]int64]bool // (parentID, studentID)
	studentLinks map[[2]int64]bool // (userID, studentID)
	classLinks   map[[2]int64]bool // (teacherID, classID)
	err          error
	calls        int
}

func (f *fakeResolver) ParentHasStudent(_ context.Context, parentID, studentID int64) (bool, error) {
	f.calls++
	return f.parentLinks[[2]int64{parentID, studentID}], f.err
}

func (f *fakeResolver) StudentOwnedByUser(_ context.Context, userID, studentID int64) (bool, error) {
	f.calls++
	return f.studentLinks[[2]int64{userID, studentID}], f.err
}

func (f *fakeResolver) TeacherAssignedToClass(_ context.Context, teacherID, classID int64) (bool, error) {
	f.calls++
	return f.classLinks[[2]int64{teacherID, classID}], f.err
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		parentLinks:  map[[2]int64]bool{},
		studentLinks: map[[2]int64]bool{},
		classLinks:   map[[2]int64]bool{},
	}
}

func TestAuthorizeCrossTenantCheckedFirst(t *testing.T) {
	resolver := newFakeResolver()
	guard := NewGuard(resolver)
	ctx := context.Background()

	// Every role, including the most privileged ones, is refused when the
	// target tenant differs from the actor's.
	for _, role := range models.ValidRoles {
		actor := Actor{UserID: 1, SchoolID: 1, Role: role}
		decision, err := guard.Authorize(ctx, actor, ActionRead, ResourceStudents, 2, Ownership{})
		require.NoError(t, err)
		assert.False(t, decision.Allowed, "role %s must not cross tenants", role)
		assert.Equal(t, DenyCrossTenant, decision.Reason)
	}

	// The tenant check runs before any ownership lookup.
	assert.Zero(t, resolver.calls)
}

func TestAuthorizeForbiddenAction(t *testing.T) {
	guard := NewGuard(newFakeResolver())

	tests := []struct {
		name     string
		role     models.UserRole
		action   Action
		resource Resource
	}{
		{"teacher cannot create classes", models.RoleTeacher, ActionCreate, ResourceClasses},
		{"teacher cannot deactivate users", models.RoleTeacher, ActionDeactivate, ResourceUsers},
		{"parent cannot create attendance", models.RoleParent, ActionCreate, ResourceAttendance},
		{"parent cannot read invitations", models.RoleParent, ActionRead, ResourceInvitations},
		{"student cannot update grades", models.RoleStudent, ActionUpdate, ResourceGrades},
		{"staff cannot bulk mark attendance", models.RoleStaff, ActionBulk, ResourceAttendance},
		{"finance officer cannot update schools", models.RoleFinanceOfficer, ActionUpdate, ResourceSchools},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := Actor{UserID: 7, SchoolID: 3, Role: tt.role}
			decision, err := guard.Authorize(context.Background(), actor, tt.action, tt.resource, 3, Ownership{})
			require.NoError(t, err)
			assert.False(t, decision.Allowed)
			assert.Equal(t, DenyForbiddenAction, decision.Reason)
		})
	}
}

func TestAuthorizeOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("parent linked to student is allowed", func(t *testing.T) {
		resolver := newFakeResolver()
		resolver.parentLinks[[2]int64{10, 55}] = true
		guard := NewGuard(resolver)

		actor := Actor{UserID: 10, SchoolID: 1, Role: models.RoleParent}
		decision, err := guard.Authorize(ctx, actor, ActionRead, ResourceGrades, 1, Ownership{StudentID: 55})
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
	})

	t.Run("parent without link is denied not_owner", func(t *testing.T) {
		guard := NewGuard(newFakeResolver())

		actor := Actor{UserID: 10, SchoolID: 1, Role: models.RoleParent}
		decision, err := guard.Authorize(ctx, actor, ActionRead, ResourceGrades, 1, Ownership{StudentID: 55})
		require.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.Equal(t, DenyNotOwner, decision.Reason)
	})

	t.Run("student may only read own records", func(t *testing.T) {
		resolver := newFakeResolver()
		resolver.studentLinks[[2]int64{20, 90}] = true
		guard := NewGuard(resolver)

		actor := Actor{UserID: 20, SchoolID: 1, Role: models.RoleStudent}

		decision, err := guard.Authorize(ctx, actor, ActionRead, ResourceAttendance, 1, Ownership{StudentID: 90})
		require.NoError(t, err)
		assert.True(t, decision.Allowed)

		decision, err = guard.Authorize(ctx, actor, ActionRead, ResourceAttendance, 1, Ownership{StudentID: 91})
		require.NoError(t, err)
		assert.Equal(t, DenyNotOwner, decision.Reason)
	})

	t.Run("teacher assigned to class may bulk mark attendance", func(t *testing.T) {
		resolver := newFakeResolver()
		resolver.classLinks[[2]int64{30, 5}] = true
		guard := NewGuard(resolver)

		actor := Actor{UserID: 30, SchoolID: 1, Role: models.RoleTeacher}

		decision, err := guard.Authorize(ctx, actor, ActionBulk, ResourceAttendance, 1, Ownership{ClassID: 5})
		require.NoError(t, err)
		assert.True(t, decision.Allowed)

		decision, err = guard.Authorize(ctx, actor, ActionBulk, ResourceAttendance, 1, Ownership{ClassID: 6})
		require.NoError(t, err)
		assert.Equal(t, DenyNotOwner, decision.Reason)
	})

	t.Run("admin roles skip ownership checks", func(t *testing.T) {
		resolver := newFakeResolver()
		guard := NewGuard(resolver)

		actor := Actor{UserID: 1, SchoolID: 1, Role: models.RoleSchoolAdmin}
		decision, err := guard.Authorize(ctx, actor, ActionUpdate, ResourceStudents, 1, Ownership{StudentID: 99})
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Zero(t, resolver.calls)
	})
}

func TestAuthorizeResolverErrorPropagates(t *testing.T) {
	resolver := newFakeResolver()
	resolver.err = errors.New("connection reset")
	guard := NewGuard(resolver)

	actor := Actor{UserID: 10, SchoolID: 1, Role: models.RoleParent}
	_, err := guard.Authorize(context.Background(), actor, ActionRead, ResourceStudents, 1, Ownership{StudentID: 4})
	assert.ErrorContains(t, err, "connection reset")
}

func TestAuthorizeIdempotent(t *testing.T) {
	resolver := newFakeResolver()
	resolver.classLinks[[2]int64{30, 5}] = true
	guard := NewGuard(resolver)

	actor := Actor{UserID: 30, SchoolID: 1, Role: models.RoleTeacher}
	first, err := guard.Authorize(context.Background(), actor, ActionBulk, ResourceAttendance, 1, Ownership{ClassID: 5})
	require.NoError(t, err)
	second, err := guard.Authorize(context.Background(), actor, ActionBulk, ResourceAttendance, 1, Ownership{ClassID: 5})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// A teacher assigned to class C in school S1 asking to bulk-mark a class in
// school S2 must be refused for the tenant mismatch alone, before role or
// ownership are even considered.
func TestAuthorizeCrossTenantBeatsOwnership(t *testing.T) {
	resolver := newFakeResolver()
	resolver.classLinks[[2]int64{30, 5}] = true
	guard := NewGuard(resolver)

	actor := Actor{UserID: 30, SchoolID: 1, Role: models.RoleTeacher}
	decision, err := guard.Authorize(context.Background(), actor, ActionBulk, ResourceAttendance, 2, Ownership{ClassID: 5})
	require.NoError(t, err)
	assert.Equal(t, DenyCrossTenant, decision.Reason)
	assert.Zero(t, resolver.calls)
}

func TestRoleAllowsUnknownRole(t *testing.T) {
	assert.False(t, RoleAllows(models.UserRole("janitor"), ResourceStudents, ActionRead))
}
