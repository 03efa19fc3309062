package model

import (
	"encoding/json"
	"fmt"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// UnmarshalJSON rejects roles outside the closed set so a typo on the wire
// can never be mistaken for a regular user.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("role must be a string: %w", err)
	}
	role := Role(s)
	if !role.IsValid() {
		return fmt.Errorf("unknown role %q", s)
	}
	*r = role
	return nil
}

// Label is the human-readable badge shown on the profile screen.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleUser:
		return "User"
	default:
		return "Unknown"
	}
}

type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsActive    bool   `json:"is_active"`
	Role        Role   `json:"role"`
	PhoneNumber string `json:"phone_number"`
}

func (u User) IsAdmin() bool {
	switch u.Role {
	case RoleAdmin:
		return true
	case RoleUser:
		return false
	default:
		return false
	}
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
