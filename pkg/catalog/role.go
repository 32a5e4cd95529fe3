package catalog

import "strings"

// Role is one of the fixed user categories that decides which dashboard
// content is shown.
type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleEducator    Role = "Educator"
	RoleCitizen     Role = "Citizen"
	RoleLegalExpert Role = "LegalExpert"
)

// AllRoles returns every role in selector order.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleEducator, RoleCitizen, RoleLegalExpert}
}

// Valid reports whether r is a member of the enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEducator, RoleCitizen, RoleLegalExpert:
		return true
	default:
		return false
	}
}

// Label returns the human-facing name shown in the profile and selector.
func (r Role) Label() string {
	if r == RoleLegalExpert {
		return "Legal Expert"
	}
	return string(r)
}

func (r Role) String() string {
	return string(r)
}

// ParseRole resolves a role key. Matching is case-insensitive and accepts
// the spaced label as well ("legal expert").
func ParseRole(s string) (Role, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(s), ""))
	if key == "" {
		return "", false
	}
	for _, r := range AllRoles() {
		if strings.ToLower(string(r)) == key {
			return r, true
		}
	}
	return "", false
}
