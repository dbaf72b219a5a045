package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emreacar/schoolhub/internal/app/models"
)

func TestRoleAllowsCapabilityTable(t *testing.T) {
	tests := []struct {
		name     string
		role     models.UserRole
		resource Resource
		action   Action
		want     bool
	}{
		{"school admin manages users", models.RoleSchoolAdmin, ResourceUsers, ActionCreate, true},
		{"principal deactivates classes", models.RolePrincipal, ResourceClasses, ActionDeactivate, true},
		{"teacher marks attendance", models.RoleTeacher, ResourceAttendance, ActionCreate, true},
		{"teacher bulk-marks attendance", models.RoleTeacher, ResourceAttendance, ActionBulk, true},
		{"teacher cannot create students", models.RoleTeacher, ResourceStudents, ActionCreate, false},
		{"teacher cannot manage schools", models.RoleTeacher, ResourceSchools, ActionRead, false},
		{"teacher archives assignments", models.RoleTeacher, ResourceAssignments, ActionDeactivate, true},
		{"student cannot archive assignments", models.RoleStudent, ResourceAssignments, ActionDeactivate, false},
		{"parent reads grades", models.RoleParent, ResourceGrades, ActionRead, true},
		{"parent cannot write grades", models.RoleParent, ResourceGrades, ActionUpdate, false},
		{"parent cannot see assignments directly", models.RoleParent, ResourceAssignments, ActionRead, false},
		{"student reads own attendance", models.RoleStudent, ResourceAttendance, ActionRead, true},
		{"student cannot mark attendance", models.RoleStudent, ResourceAttendance, ActionCreate, false},
		{"finance officer reads students", models.RoleFinanceOfficer, ResourceStudents, ActionRead, true},
		{"finance officer cannot read grades", models.RoleFinanceOfficer, ResourceGrades, ActionRead, false},
		{"staff reads classes", models.RoleStaff, ResourceClasses, ActionRead, true},
		{"staff cannot update classes", models.RoleStaff, ResourceClasses, ActionUpdate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleAllows(tt.role, tt.resource, tt.action))
		})
	}
}

func TestOwnershipScopedRoles(t *testing.T) {
	assert.True(t, ownershipScoped(models.RoleTeacher))
	assert.True(t, ownershipScoped(models.RoleParent))
	assert.True(t, ownershipScoped(models.RoleStudent))

	assert.False(t, ownershipScoped(models.RoleSuperAdmin))
	assert.False(t, ownershipScoped(models.RoleSchoolAdmin))
	assert.False(t, ownershipScoped(models.RolePrincipal))
	assert.False(t, ownershipScoped(models.RoleFinanceOfficer))
	assert.False(t, ownershipScoped(models.RoleStaff))
}
