package user

import (
	"database/sql/driver"

	"github.com/pkg/errors"
)

// Role is the closed set of roles a session can carry.
// RoleUnknown covers every unrecognized raw value and is treated as a guest.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleTeacher
	RoleStudent
)

var (
	roleNames = map[Role]string{
		RoleAdmin:   "admin",
		RoleTeacher: "teacher",
		RoleStudent: "student",
	}

	Roles = []RoleChoice{
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "Student", Value: RoleStudent},
	}
)

type RoleChoice struct {
	Name  string `json:"name"`
	Value Role   `json:"value"`
}

// NormalizeRole returns the Role named exactly by raw, or RoleUnknown.
func NormalizeRole(raw string) Role {
	switch raw {
	case "admin":
		return RoleAdmin
	case "teacher":
		return RoleTeacher
	case "student":
		return RoleStudent
	default:
		return RoleUnknown
	}
}

// NormalizeRolePtr is NormalizeRole for optional values; nil is RoleUnknown.
func NormalizeRolePtr(raw *string) Role {
	if raw == nil {
		return RoleUnknown
	}
	return NormalizeRole(*raw)
}

func IsAdmin(r Role) bool { return r == RoleAdmin }

// IsGuest reports whether r is not privileged: only admin is.
func IsGuest(r Role) bool { return !IsAdmin(r) }

func (r Role) String() string {
	return roleNames[r]
}

func (r Role) IsValid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	*r = NormalizeRole(string(text))
	return nil
}

func (r Role) Value() (driver.Value, error) {
	return r.String(), nil
}

func (r *Role) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*r = RoleUnknown
	case string:
		*r = NormalizeRole(v)
	case []byte:
		*r = NormalizeRole(string(v))
	default:
		return errors.Errorf("user.Role: cannot scan %T", src)
	}
	return nil
}
