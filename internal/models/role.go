package models

// Role is the closed set of actor capabilities in the portal. It is resolved
// per request from the authenticated user and passed explicitly into every
// core operation; nothing reads it from ambient state.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleWarden  Role = "WARDEN"
	RoleFaculty Role = "FACULTY"
	RoleAdmin   Role = "ADMIN"
)

// IsStaff reports whether the role may act on complaints it does not own.
func (r Role) IsStaff() bool {
	return r == RoleWarden || r == RoleFaculty || r == RoleAdmin
}

// ParseRole maps a raw string to a Role. Unknown strings report false.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleWarden, RoleFaculty, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Actor is the authenticated identity every core operation receives.
type Actor struct {
	UserID string
	Role   Role
}
