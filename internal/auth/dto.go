package auth

import (
	"github.com/shoploft/storefront-backend/internal/users"
)

// RegisterRequest carries the decoded registration payload.
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// LoginRequest carries the decoded login payload.
type LoginRequest struct {
	Email    string
	Password string
}

// AuthResponse is returned on successful login or registration.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}
