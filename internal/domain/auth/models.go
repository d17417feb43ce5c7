package auth

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

var Roles = []Role{RoleAdmin, RoleHR, RoleEmployee}

// ParseRole normalizes a role name and rejects anything outside the closed set.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	for _, candidate := range Roles {
		if role == candidate {
			return role, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", value)
}

type User struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId,omitempty"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         Role      `json:"role"`
	Department   string    `json:"department,omitempty"`
	Position     string    `json:"position,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	HireDate     time.Time `json:"hireDate,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
}

func (u User) Key() string {
	return u.ID
}

func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// AuthResult is what login and registration return.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
