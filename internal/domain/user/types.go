package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	// RoleRequester can submit reservation requests and view their own.
	RoleRequester Role = "requester"
	// RoleStaff reviews requests, records payments and runs manual overrides.
	RoleStaff Role = "staff"
	// RoleManager additionally waives fees and triggers automation runs.
	RoleManager Role = "manager"
	// RoleAdmin can also hard-delete reservation records.
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleRequester, RoleStaff, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

var roleLevel = map[Role]int{
	RoleRequester: 1,
	RoleStaff:     2,
	RoleManager:   3,
	RoleAdmin:     4,
}

// AtLeast reports whether r ranks at or above min in the role hierarchy.
func (r Role) AtLeast(min Role) bool {
	level, ok := roleLevel[r]
	minLevel, minOK := roleLevel[min]
	return ok && minOK && level >= minLevel
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
