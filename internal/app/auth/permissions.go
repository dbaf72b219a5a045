package auth

import (
	"github.com/emreacar/schoolhub/internal/app/models"
)

// Action is a permitted operation on a resource.
type Action string

const (
	ActionCreate     Action = "create"
	ActionRead       Action = "read"
	ActionUpdate     Action = "update"
	ActionDeactivate Action = "deactivate"
	ActionBulk       Action = "bulk"
)

// Resource names an API resource type guarded by the permission table.
type Resource string

const (
	ResourceSchools     Resource = "schools"
	ResourceUsers       Resource = "users"
	ResourceInvitations Resource = "invitations"
	ResourceStudents    Resource = "students"
	ResourceClasses     Resource = "classes"
	ResourceSections    Resource = "sections"
	ResourceSubjects    Resource = "subjects"
	ResourceEnrollments Resource = "enrollments"
	ResourceCalendar    Resource = "calendar"
	ResourceAttendance  Resource = "attendance"
	ResourceAssignments Resource = "assignments"
	ResourceGrades      Resource = "grades"
)

var allActions = []Action{ActionCreate, ActionRead, ActionUpdate, ActionDeactivate, ActionBulk}

var readOnly = []Action{ActionRead}

// fullAccess grants every action on every resource; used for the admin roles.
func fullAccess() map[Resource][]Action {
	perms := make(map[Resource][]Action)
	for _, r := range []Resource{
		ResourceSchools, ResourceUsers, ResourceInvitations, ResourceStudents,
		ResourceClasses, ResourceSections, ResourceSubjects, ResourceEnrollments,
		ResourceCalendar, ResourceAttendance, ResourceAssignments, ResourceGrades,
	} {
		perms[r] = allActions
	}
	return perms
}

// rolePermissions is the capability table: role -> resource -> permitted
// actions. It is pure data; granting a role a new capability is an edit here,
// not a code change elsewhere. The guard narrows teacher/parent/student
// access further via ownership checks; this table only bounds the action set.
var rolePermissions = map[models.UserRole]map[Resource][]Action{
	models.RoleSuperAdmin:  fullAccess(),
	models.RoleSchoolAdmin: fullAccess(),
	models.RolePrincipal:   fullAccess(),

	models.RoleTeacher: {
		ResourceStudents:    readOnly,
		ResourceClasses:     readOnly,
		ResourceSections:    readOnly,
		ResourceSubjects:    readOnly,
		ResourceEnrollments: readOnly,
		ResourceCalendar:    readOnly,
		ResourceAttendance:  {ActionCreate, ActionRead, ActionUpdate, ActionBulk},
		ResourceAssignments: {ActionCreate, ActionRead, ActionUpdate, ActionDeactivate},
		ResourceGrades:      {ActionCreate, ActionRead, ActionUpdate, ActionBulk},
	},

	models.RoleParent: {
		ResourceStudents:   readOnly,
		ResourceCalendar:   readOnly,
		ResourceAttendance: readOnly,
		ResourceGrades:     readOnly,
	},

	models.RoleStudent: {
		ResourceStudents:    readOnly,
		ResourceCalendar:    readOnly,
		ResourceAttendance:  readOnly,
		ResourceAssignments: readOnly,
		ResourceGrades:      readOnly,
	},

	models.RoleFinanceOfficer: {
		ResourceUsers:    readOnly,
		ResourceStudents: readOnly,
		ResourceClasses:  readOnly,
		ResourceCalendar: readOnly,
	},

	models.RoleStaff: {
		ResourceStudents: readOnly,
		ResourceClasses:  readOnly,
		ResourceSections: readOnly,
		ResourceSubjects: readOnly,
		ResourceCalendar: readOnly,
	},
}

// RoleAllows reports whether the capability table grants role the action on
// resource. It consults data only; tenant and ownership checks are the
// guard's job.
func RoleAllows(role models.UserRole, resource Resource, action Action) bool {
	actions, ok := rolePermissions[role][resource]
	if !ok {
		return false
	}
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

// ownershipScoped reports whether a role's access must additionally be tied
// to entities linked to the acting user (parent->student, student->self,
// teacher->class).
func ownershipScoped(role models.UserRole) bool {
	switch role {
	case models.RoleParent, models.RoleStudent, models.RoleTeacher:
		return true
	}
	return false
}
