package types

import "github.com/m-mizutani/goerr/v2"

// Role is the organisational role of a user
type Role string

const (
	RoleAdmin             Role = "admin"
	RoleBereichsleiter    Role = "bereichsleiter"
	RoleTechnischerLeiter Role = "technischer_leiter"
	RoleProjektleiter     Role = "projektleiter"
	RoleUser              Role = "user"
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{
		RoleAdmin,
		RoleBereichsleiter,
		RoleTechnischerLeiter,
		RoleProjektleiter,
		RoleUser,
	}
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleBereichsleiter, RoleTechnischerLeiter, RoleProjektleiter, RoleUser:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", goerr.New("invalid role", goerr.V("role", s))
	}
	return r, nil
}
