package auth

// Role is the closed set of account roles. Exactly one role is assigned at
// registration and never changes afterwards.
type Role string

const (
	RolePatient   Role = "Patient"
	RoleDoctor    Role = "Doctor"
	RoleReception Role = "Reception"
	RoleAdmin     Role = "Admin"
)

// ParseRole maps a stored role string onto the closed Role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePatient, RoleDoctor, RoleReception, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

func (r Role) String() string { return string(r) }

// IsStaff reports whether the role belongs to clinic staff.
func (r Role) IsStaff() bool {
	return r == RoleDoctor || r == RoleReception || r == RoleAdmin
}
