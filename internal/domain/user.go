package domain

import "time"

// Role is the coarse permission label carried inside tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// AuthProvider identifies how an account authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User is the domain model for account holders (patients and lab admins).
type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string
	Role            Role
	Provider        AuthProvider
	ProviderID      *string
	ProfileImageURL *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
