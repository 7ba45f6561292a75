package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/iliri/iliri-api/internal/application/service"
	"github.com/iliri/iliri-api/internal/presentation/http/dto/request"
	"github.com/iliri/iliri-api/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles operator login
// @Summary Login
// @Description Authenticate the operator and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Name:       req.Name,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"user":       output.User,
		"token":      output.Token,
		"token_type": "Bearer",
	})
}

// Session returns the remembered session, if any
// @Summary Restore session
// @Tags auth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	state, err := h.authService.RestoreSession(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if state == nil {
		response.OK(c, "No remembered session", nil)
		return
	}

	response.OK(c, "Session restored", gin.H{
		"user":       state.User,
		"token":      state.Token,
		"token_type": "Bearer",
	})
}

// Logout handles operator logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Logged out successfully", nil)
}

// GetProfile returns the signed-in operator
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authService.CurrentUser()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", user)
}

// UpdateProfile handles profile and theme updates
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), &service.UpdateProfileInput{
		Name:        req.Name,
		Email:       req.Email,
		Theme:       req.Theme,
		ToggleTheme: req.ToggleTheme,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile updated successfully", user)
}

// ChangePassword handles password change. The operator is signed out afterwards.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), &service.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	}); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Password changed successfully. Please sign in again.", nil)
}
