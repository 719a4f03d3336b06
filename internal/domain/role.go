package domain

import "errors"

// ErrInvalidRole is returned for a role name outside the known set.
var ErrInvalidRole = errors.New("invalid role")

// Role is the authorization level carried in a user's credential.
type Role string

const (
	RoleAdmin          Role = "Admin"
	RoleProjectManager Role = "Project Manager"
	RoleDeveloper      Role = "Developer"

	// DefaultRole is given to self-registered users.
	DefaultRole = RoleDeveloper
)

// Roles lists every known role in name order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleDeveloper, RoleProjectManager}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProjectManager, RoleDeveloper:
		return true
	}
	return false
}

// In reports whether r is one of allowed.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
