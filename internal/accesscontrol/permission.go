package accesscontrol

// Permission is a resource:action capability token drawn from a closed set.
type Permission string

const (
	PermTasksCreate Permission = "tasks:create"
	PermTasksRead   Permission = "tasks:read"
	PermTasksUpdate Permission = "tasks:update"
	PermTasksDelete Permission = "tasks:delete"

	PermBudgetCreate  Permission = "budget:create"
	PermBudgetRead    Permission = "budget:read"
	PermBudgetApprove Permission = "budget:approve"
	PermBudgetReject  Permission = "budget:reject"

	PermDocumentsUpload Permission = "documents:upload"
	PermDocumentsRead   Permission = "documents:read"

	PermReportsCreate Permission = "reports:create"
	PermReportsRead   Permission = "reports:read"

	PermFeedbackSubmit Permission = "feedback:submit"
	PermFeedbackRead   Permission = "feedback:read"

	PermAIUse Permission = "ai:use"

	PermUsersManage    Permission = "users:manage"
	PermRolesManage    Permission = "roles:manage"
	PermAuditRead      Permission = "audit:read"
	PermSettingsManage Permission = "settings:manage"
)

// AllPermissions is the closed set of capability tokens the system knows.
var AllPermissions = []Permission{
	PermTasksCreate, PermTasksRead, PermTasksUpdate, PermTasksDelete,
	PermBudgetCreate, PermBudgetRead, PermBudgetApprove, PermBudgetReject,
	PermDocumentsUpload, PermDocumentsRead,
	PermReportsCreate, PermReportsRead,
	PermFeedbackSubmit, PermFeedbackRead,
	PermAIUse,
	PermUsersManage, PermRolesManage, PermAuditRead, PermSettingsManage,
}

func (p Permission) Valid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

// Role is a named permission bundle.
type Role string

const (
	RoleSP         Role = "sp"
	RoleTeamLeader Role = "team_leader"
	RoleMember     Role = "member"
	RoleViewer     Role = "viewer"
)

var AllRoles = []Role{RoleSP, RoleTeamLeader, RoleMember, RoleViewer}

func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// DefaultRolePermissions is the seed mapping from role to granted keys. The
// sp role is granted the full closed set, so its grant list is a superset of
// every other role by construction.
func DefaultRolePermissions() map[Role][]Permission {
	return map[Role][]Permission{
		RoleSP: append([]Permission(nil), AllPermissions...),
		RoleTeamLeader: {
			PermTasksCreate, PermTasksRead, PermTasksUpdate, PermTasksDelete,
			PermBudgetRead, PermBudgetApprove, PermBudgetReject,
			PermDocumentsUpload, PermDocumentsRead,
			PermReportsCreate, PermReportsRead,
			PermFeedbackRead,
			PermAIUse,
		},
		RoleMember: {
			PermTasksCreate, PermTasksRead, PermTasksUpdate,
			PermBudgetCreate, PermBudgetRead,
			PermDocumentsUpload, PermDocumentsRead,
			PermReportsCreate, PermReportsRead,
			PermFeedbackSubmit,
			PermAIUse,
		},
		RoleViewer: {
			PermTasksRead,
			PermBudgetRead,
			PermDocumentsRead,
			PermReportsRead,
		},
	}
}
