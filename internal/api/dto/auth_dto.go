package dto

import (
	"time"

	"github.com/impulse-lab/lab-booking-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleLoginRequest payload for federated login.
type GoogleLoginRequest struct {
	Code string `json:"code"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserSummary is the public profile shape. The password hash never leaves
// the service.
type UserSummary struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Role            domain.Role `json:"role"`
	ProfileImageURL *string     `json:"profile_image_url,omitempty"`
}

// NewUserSummary maps a domain user to its public shape.
func NewUserSummary(user *domain.User) UserSummary {
	return UserSummary{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            user.Role,
		ProfileImageURL: user.ProfileImageURL,
	}
}
