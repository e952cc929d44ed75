package enums

import "fmt"

// UserRole distinguishes storefront shoppers from admin-panel users.
type UserRole string

const (
	UserRoleShopper UserRole = "shopper"
	UserRoleAdmin   UserRole = "admin"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleShopper, UserRoleAdmin:
		return true
	}
	return false
}

func ParseUserRole(value string) (UserRole, error) {
	role := UserRole(value)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid user role %q", value)
	}
	return role, nil
}
