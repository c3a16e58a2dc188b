package models

import (
	"fmt"
	"strings"
)

// Role is stored as its upper-case name.
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
	RoleAdmin   Role = "ADMIN"
)

var knownRoles = map[Role]struct{}{
	RolePatient: {},
	RoleDoctor:  {},
	RoleAdmin:   {},
}

// ParseRole resolves a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := knownRoles[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// Lower returns the canonical client-facing spelling of the role.
func (r Role) Lower() string {
	return strings.ToLower(string(r))
}

func (r Role) String() string {
	return string(r)
}
