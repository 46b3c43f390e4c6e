package enums

import "fmt"

// UserRole represents an association-level permissions role.
type UserRole string

const (
	UserRoleResident        UserRole = "resident"
	UserRoleTenant          UserRole = "tenant"
	UserRoleBoardMember     UserRole = "board_member"
	UserRolePropertyManager UserRole = "property_manager"
	UserRoleAdmin           UserRole = "admin"
	UserRoleSuperAdmin      UserRole = "super_admin"
)

var validUserRoles = []UserRole{
	UserRoleResident,
	UserRoleTenant,
	UserRoleBoardMember,
	UserRolePropertyManager,
	UserRoleAdmin,
	UserRoleSuperAdmin,
}

// String implements fmt.Stringer.
func (u UserRole) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserRole.
func (u UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}

// UserRoles returns the full role domain, in declaration order.
func UserRoles() []UserRole {
	out := make([]UserRole, len(validUserRoles))
	copy(out, validUserRoles)
	return out
}
