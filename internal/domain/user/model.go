package user

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleAdmin          Role = "admin"
	RoleRepresentative Role = "representative"
)

// User is a registered account: either an admin or a federation
// representative tied to a country.
type User struct {
	ID          string
	Email       string
	Role        Role
	Country     string
	DisplayName string
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("invalid user email: %q", u.Email)
	}
	switch u.Role {
	case RoleAdmin:
	case RoleRepresentative:
		if u.Country == "" {
			return fmt.Errorf("representative must have a country")
		}
	default:
		return fmt.Errorf("invalid user role: %q", u.Role)
	}
	return nil
}

// Principal is the identity attached to a request after token
// verification.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}
