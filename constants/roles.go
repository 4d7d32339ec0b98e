package constants

// Roles stored in user_roles.role
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleModerator  = "moderator"
	RoleUser       = "user"
)

// Capabilities granted to roles. A capability is checked once per request
// by the auth middleware and stored in the fiber locals.
const (
	CapView       = "view"
	CapEdit       = "edit"
	CapDelete     = "delete"
	CapManageTeam = "manage_team"
	CapGenerate   = "generate"
)

var roleCapabilities = map[string][]string{
	RoleSuperAdmin: {CapView, CapEdit, CapDelete, CapManageTeam, CapGenerate},
	RoleAdmin:      {CapView, CapEdit, CapDelete, CapGenerate},
	RoleModerator:  {CapView},
	RoleUser:       {},
}

// AssignableRoles lists the roles a super admin may hand out.
var AssignableRoles = []string{RoleSuperAdmin, RoleAdmin, RoleModerator, RoleUser}

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}

// CapabilitiesFor returns the capability set of a role. Unknown or empty
// roles get an empty set.
func CapabilitiesFor(role string) map[string]bool {
	set := make(map[string]bool)
	for _, c := range roleCapabilities[role] {
		set[c] = true
	}
	return set
}

// RoleHas reports whether role grants capability.
func RoleHas(role, capability string) bool {
	return CapabilitiesFor(role)[capability]
}
