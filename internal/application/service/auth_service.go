package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/iliri/iliri-api/internal/config"
	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/internal/domain/enum"
	"github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/iliri/iliri-api/pkg/apperror"
	"github.com/iliri/iliri-api/pkg/utils"
)

// operatorID is the id of the single operator account
const operatorID = "1"

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 8

// AuthService handles sign-in for the single operator account and the
// remembered session blob
type AuthService struct {
	kv           repository.KeyValueRepository
	jwtManager   *utils.JWTManager
	username     string
	email        string
	failureDelay time.Duration

	mu           sync.Mutex
	passwordHash string
	generation   int64
	failures     int
	session      *entity.AuthState
}

// NewAuthService creates a new auth service. A password changed through
// ChangePassword takes precedence over the configured one.
func NewAuthService(ctx context.Context, kv repository.KeyValueRepository, jwtManager *utils.JWTManager, cfg config.AuthConfig) (*AuthService, error) {
	s := &AuthService{
		kv:           kv,
		jwtManager:   jwtManager,
		username:     strings.TrimSpace(cfg.Username),
		email:        cfg.Email,
		failureDelay: cfg.FailureDelay,
		passwordHash: cfg.PasswordHash,
	}

	if hash, ok, err := kv.Get(ctx, entity.AuthPasswordKey); err != nil {
		return nil, err
	} else if ok && hash != "" {
		s.passwordHash = hash
	}
	if s.passwordHash == "" {
		hash, err := utils.HashPassword(cfg.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash operator password: %w", err)
		}
		s.passwordHash = hash
	}

	if gen, ok, err := kv.Get(ctx, entity.AuthGenerationKey); err != nil {
		return nil, err
	} else if ok {
		if s.generation, err = strconv.ParseInt(gen, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid session generation %q: %w", gen, err)
		}
	}

	return s, nil
}

// LoginInput represents the login input
type LoginInput struct {
	Name       string
	Password   string
	RememberMe bool
}

// LoginOutput represents the login output
type LoginOutput struct {
	User  *entity.User
	Token string
}

func validateLoginName(fe *apperror.FieldErrors, field, value string) {
	name := strings.TrimSpace(value)
	switch {
	case name == "":
		fe.Add(field, "Name is required")
	case utf8.RuneCountInString(name) < 2 || utf8.RuneCountInString(name) > 64:
		fe.Add(field, "Name must be between 2 and 64 characters")
	case !loginNamePattern.MatchString(name):
		fe.Add(field, "Name can only contain letters, digits, spaces, dots, and underscores")
	}
}

func validatePassword(fe *apperror.FieldErrors, field, label, value string) {
	switch {
	case value == "":
		fe.Add(field, label+" is required")
	case len(value) < MinPasswordLength:
		fe.Add(field, fmt.Sprintf("%s must be at least %d characters", label, MinPasswordLength))
	}
}

// Login checks the operator credentials and opens a session. After a failed
// attempt the next one is delayed. With RememberMe the session survives a restart.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	var fe apperror.FieldErrors
	validateLoginName(&fe, "name", input.Name)
	validatePassword(&fe, "password", "Password", input.Password)
	if err := fe.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	failures := s.failures
	s.mu.Unlock()

	if failures > 0 && s.failureDelay > 0 {
		timer := time.NewTimer(s.failureDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(input.Name)
	if name != s.username || !utils.CheckPassword(input.Password, s.passwordHash) {
		s.failures++
		return nil, apperror.ErrInvalidCredentials
	}
	s.failures = 0

	user := &entity.User{
		ID:    operatorID,
		Name:  name,
		Email: s.email,
		Theme: enum.ThemeLight,
	}
	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Name, user.Email, s.generation)
	if err != nil {
		return nil, err
	}

	s.session = &entity.AuthState{User: user, Token: token}
	if input.RememberMe {
		if err := s.persistLocked(ctx); err != nil {
			return nil, err
		}
	}

	return &LoginOutput{User: cloneUser(user), Token: token}, nil
}

// RestoreSession returns the remembered session, or nil if there is none or
// its token is no longer valid
func (s *AuthService) RestoreSession(ctx context.Context) (*entity.AuthState, error) {
	blob, ok, err := s.kv.Get(ctx, entity.AuthStorageKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var stored entity.AuthStorage
	if err := json.Unmarshal([]byte(blob), &stored); err != nil || stored.State.User == nil {
		return nil, nil
	}
	if _, err := s.ValidateToken(stored.State.Token); err != nil {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &entity.AuthState{User: cloneUser(stored.State.User), Token: stored.State.Token}
	return &entity.AuthState{User: cloneUser(stored.State.User), Token: stored.State.Token}, nil
}

// ValidateToken checks the signature and expiry of a session token and
// rejects tokens issued before the last logout
func (s *AuthService) ValidateToken(token string) (*utils.JWTClaims, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if claims.Generation != s.generation {
		return nil, apperror.ErrTokenExpired
	}
	if s.session == nil || s.session.Token != token {
		s.session = &entity.AuthState{
			User: &entity.User{
				ID:    claims.UserID,
				Name:  claims.Username,
				Email: claims.Email,
				Theme: enum.ThemeLight,
			},
			Token: token,
		}
	}
	return claims, nil
}

// CurrentUser returns the signed-in user
func (s *AuthService) CurrentUser() (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, apperror.ErrUnauthorized
	}
	return cloneUser(s.session.User), nil
}

// Logout ends the session, forgets the remembered blob and revokes issued tokens
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logoutLocked(ctx)
}

func (s *AuthService) logoutLocked(ctx context.Context) error {
	next := s.generation + 1
	if err := s.kv.Set(ctx, entity.AuthGenerationKey, strconv.FormatInt(next, 10)); err != nil {
		return err
	}
	s.generation = next
	s.session = nil
	return s.kv.Delete(ctx, entity.AuthStorageKey)
}

// UpdateProfileInput represents the editable profile fields
type UpdateProfileInput struct {
	Name        *string
	Email       *string
	Theme       *enum.Theme
	ToggleTheme bool
}

// UpdateProfile changes the signed-in user and always persists the session blob
func (s *AuthService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error) {
	var fe apperror.FieldErrors
	if input.Name != nil {
		validateLoginName(&fe, "name", *input.Name)
	}
	if input.Email != nil && !emailPattern.MatchString(strings.TrimSpace(*input.Email)) {
		fe.Add("email", "Please enter a valid email address")
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, apperror.ErrUnauthorized
	}

	user := s.session.User
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		user.Email = strings.TrimSpace(*input.Email)
	}
	if input.Theme != nil {
		user.Theme = *input.Theme
	}
	if input.ToggleTheme {
		user.Theme = user.Theme.Toggle()
	}

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return cloneUser(user), nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// ChangePassword replaces the operator password and signs the operator out
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	var fe apperror.FieldErrors
	if input.CurrentPassword == "" {
		fe.Add("currentPassword", "Current password is required")
	}
	validatePassword(&fe, "newPassword", "New password", input.NewPassword)
	if !fe.Has("newPassword") && input.NewPassword != input.ConfirmPassword {
		fe.Add("confirmPassword", "Passwords do not match")
	}
	if err := fe.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !utils.CheckPassword(input.CurrentPassword, s.passwordHash) {
		return apperror.NewFieldError("currentPassword", "Current password is incorrect")
	}

	hash, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, entity.AuthPasswordKey, hash); err != nil {
		return err
	}
	s.passwordHash = hash

	return s.logoutLocked(ctx)
}

func (s *AuthService) persistLocked(ctx context.Context) error {
	blob, err := json.Marshal(entity.AuthStorage{State: *s.session})
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, entity.AuthStorageKey, string(blob))
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
