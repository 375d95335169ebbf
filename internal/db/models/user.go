package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// UserRole represents the role of a user in the marketplace
type UserRole int

// User role constants
const (
	// UserRoleClient represents an actor who posts jobs and hires workers
	UserRoleClient UserRole = iota
	// UserRoleWorker represents an actor who applies to jobs and performs the work
	UserRoleWorker
	// UserRoleAdmin represents an administrator user
	UserRoleAdmin
)

// User represents an actor in the marketplace
type User struct {
	gorm.Model
	Name  string   `json:"name" gorm:"not null"`
	Email string   `json:"email" gorm:"not null;unique"`
	Role  UserRole `json:"role" gorm:"index"`
}

// MarshalJSON implements the json.Marshaler interface for User
func (u User) MarshalJSON() ([]byte, error) {
	type Alias User // alias to avoid infinite recursion
	return json.Marshal(Alias(u))
}

func (r UserRole) String() string {
	return []string{
		"client",
		"worker",
		"admin",
	}[r]
}

// ParseUserRole converts a string representation of a user role to UserRole type
func ParseUserRole(str string) (UserRole, error) {
	for i, role := range []string{
		"client",
		"worker",
		"admin",
	} {
		if role == str {
			return UserRole(i), nil
		}
	}
	return UserRoleClient, fmt.Errorf("invalid user role: %s", str)
}

// MarshalJSON implements the json.Marshaler interface for UserRole
func (r UserRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for UserRole
func (r *UserRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	role, err := ParseUserRole(str)
	if err != nil {
		return err
	}

	*r = role
	return nil
}

// Validate ensures the user data is valid
func (u *User) Validate() error {
	if u.Name == "" {
		return fmt.Errorf("user name cannot be empty")
	}
	if u.Email == "" {
		return fmt.Errorf("user email cannot be empty")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new user
func (u *User) BeforeCreate(_ *gorm.DB) error {
	return u.Validate()
}
