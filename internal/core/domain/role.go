package domain

import "fmt"

// Role is the caller's privilege tier inside the app.
type Role string

const (
	RoleGuest     Role = "guest"
	RoleMember    Role = "member"
	RoleAffiliate Role = "affiliate"
	RoleAdmin     Role = "admin"
)

// ParseRole converts s into a Role, rejecting anything outside the four tiers.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleGuest, RoleMember, RoleAffiliate, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
}

func (r Role) String() string { return string(r) }

// AccessLevel is the platform's per-company classification of a user.
type AccessLevel string

const (
	AccessAdmin    AccessLevel = "admin"
	AccessCustomer AccessLevel = "customer"
	AccessNone     AccessLevel = "no_access"
)

// ParseAccessLevel never fails: unknown levels collapse to AccessNone.
func ParseAccessLevel(s string) AccessLevel {
	switch l := AccessLevel(s); l {
	case AccessAdmin, AccessCustomer:
		return l
	}
	return AccessNone
}

// AccessCheck is the result of a scoped access lookup.
type AccessCheck struct {
	Level     AccessLevel
	HasAccess bool
}
