package models

import (
	"strings"
	"time"
)

// User is a registered principal. PasswordHash never leaves the server:
// transport layers render users through their own DTOs.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string `json:"-"`
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Role returns the user's role derived from the stored admin flag.
func (u *User) Role() Role {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleMember
}

// NormalizeEmail is the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
