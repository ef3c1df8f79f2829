package domain

import "strings"

// Role is the closed set of account roles.
type Role string

const (
	RoleUser      Role = "user"
	RoleDoctor    Role = "doctor"
	RoleAdmin     Role = "admin"
	RoleSuperuser Role = "superuser"
)

// SelfServiceRoles are the roles a caller may pick for themselves at
// registration. Admin is only granted by a superuser.
var SelfServiceRoles = []Role{RoleUser, RoleDoctor}

// ParseRole normalises s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", false
	}
	return r, true
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleDoctor, RoleAdmin, RoleSuperuser:
		return true
	}
	return false
}

// In reports whether r appears in roles.
func (r Role) In(roles []Role) bool {
	for _, allowed := range roles {
		if r == allowed {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
