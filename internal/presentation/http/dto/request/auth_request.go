package request

import "github.com/iliri/iliri-api/internal/domain/enum"

// LoginRequest represents a login request
type LoginRequest struct {
	Name       string `json:"name"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// UpdateProfileRequest represents a profile update request.
// ToggleTheme flips the current theme and wins over Theme.
type UpdateProfileRequest struct {
	Name        *string     `json:"name"`
	Email       *string     `json:"email"`
	Theme       *enum.Theme `json:"theme"`
	ToggleTheme bool        `json:"toggleTheme"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// NotesRequest represents the dashboard notes payload
type NotesRequest struct {
	Notes string `json:"notes" binding:"max=20000"`
}
