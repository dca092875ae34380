package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Role is an ordered access level. Comparisons are numeric: a session with
// role r satisfies a requirement q when r >= q.
type Role int

const (
	RoleGuest Role = iota
	RoleUser
	RoleOrganizer
	RoleAdmin
)

var roleNames = [...]string{
	RoleGuest:     "Guest",
	RoleUser:      "User",
	RoleOrganizer: "Organizer",
	RoleAdmin:     "Admin",
}

var roleIcons = [...]string{
	RoleGuest:     "👤",
	RoleUser:      "👤",
	RoleOrganizer: "🎪",
	RoleAdmin:     "👑",
}

// Roles lists every role in ascending order.
func Roles() []Role {
	return []Role{RoleGuest, RoleUser, RoleOrganizer, RoleAdmin}
}

func (r Role) Valid() bool {
	return r >= RoleGuest && r <= RoleAdmin
}

// String returns the display name shown next to the user's avatar.
func (r Role) String() string {
	if !r.Valid() {
		return "Role(" + strconv.Itoa(int(r)) + ")"
	}
	return roleNames[r]
}

func (r Role) Icon() string {
	if !r.Valid() {
		return roleIcons[RoleGuest]
	}
	return roleIcons[r]
}

// ParseRole accepts a role name (any case) or its numeric value.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if r := Role(n); r.Valid() {
			return r, nil
		}
		return RoleGuest, fmt.Errorf("%w: %d", ErrInvalidRole, n)
	}
	for i, name := range roleNames {
		if strings.EqualFold(name, s) {
			return Role(i), nil
		}
	}
	return RoleGuest, fmt.Errorf("%w: %q", ErrInvalidRole, s)
}
