package auth

import (
	"github.com/Shubhangam-Singh/food-delivery-app/internal/users"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
)

// RegisterRequest contains the payload required for onboarding a new user.
type RegisterRequest struct {
	FirstName string          `json:"firstName" validate:"required"`
	LastName  string          `json:"lastName" validate:"required"`
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required,min=8"`
	Phone     *string         `json:"phone,omitempty"`
	Role      *enums.UserRole `json:"role,omitempty"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the bearer token and user produced by a successful
// registration or login.
type AuthResponse struct {
	Token string         `json:"token"`
	User  *users.UserDTO `json:"user"`
}
