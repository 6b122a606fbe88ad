package domain

import "time"

// Role is the closed set of privilege levels a user can hold.
type Role string

const (
	RoleUser       Role = "user"
	RoleTechnician Role = "technician"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superAdmin"
)

// ParseRole converts a stored or submitted role string into a Role.
// Unknown strings are rejected rather than silently compared.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleTechnician, RoleManager, RoleAdmin, RoleSuperAdmin:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}

// User models an account in the platform. Role defaults to "user" at
// registration and is only ever changed through the admin role-update path.
type User struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
