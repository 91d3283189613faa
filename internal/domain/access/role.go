package access

import "strings"

// ===============================
// Roles
// ===============================

type Role string

const (
	RoleNone       Role = ""
	RoleNormalUser Role = "normal_user"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
)

// ParseRole maps a stored or submitted role name to a Role. Unknown names
// yield RoleNone and false.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleNormalUser:
		return RoleNormalUser, true
	case RoleManager:
		return RoleManager, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleNone:
		return RoleNone, true
	}
	return RoleNone, false
}

// SelfAssignable reports whether a role may be picked at registration.
func (r Role) SelfAssignable() bool {
	return r == RoleNormalUser || r == RoleManager
}

// ===============================
// Principal
// ===============================

type Principal struct {
	UserID    uint
	Role      Role
	Superuser bool
}

func (p Principal) Authenticated() bool {
	return p.UserID != 0
}

// Authorize is the single role check used by middleware and handlers.
// Roles are not hierarchical; only RoleAdmin is also granted to superusers.
func Authorize(p Principal, required Role) bool {
	if !p.Authenticated() {
		return false
	}
	switch required {
	case RoleNone:
		return true
	case RoleAdmin:
		return p.Superuser || p.Role == RoleAdmin
	default:
		return p.Role == required
	}
}

func IsNormalUser(p Principal) bool { return Authorize(p, RoleNormalUser) }
func IsManager(p Principal) bool    { return Authorize(p, RoleManager) }
func IsAdmin(p Principal) bool      { return Authorize(p, RoleAdmin) }
