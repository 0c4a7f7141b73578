package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

const minPasswordLength = 6

// ErrInvalidCredentials is returned when email or password is incorrect. It
// does not reveal which of the two was wrong.
var ErrInvalidCredentials = &apperrors.Error{
	Kind:    apperrors.KindUnauthorized,
	Message: "Invalid email or password",
	Code:    "INVALID_CREDENTIALS",
}

// AuthService handles admin authentication operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, admin *model.AdminIdentity, err error)
	Logout(ctx context.Context, principal *auth.Principal) error
	ChangePassword(ctx context.Context, adminID uuid.UUID, currentPassword, newPassword string) error
	SetPassword(ctx context.Context, email, password string) error
	EnsureAdmin(ctx context.Context, email, password, name string) (created bool, err error)
}

type authService struct {
	adminRepo  repository.AdminRepository
	jwtService *auth.JWTService
	revoked    auth.RevocationStore
}

// NewAuthService creates a new authentication service. revoked may be nil,
// in which case logout is a client-side affair only.
func NewAuthService(adminRepo repository.AdminRepository, jwtService *auth.JWTService, revoked auth.RevocationStore) AuthService {
	return &authService{
		adminRepo:  adminRepo,
		jwtService: jwtService,
		revoked:    revoked,
	}
}

// Login checks the credentials and issues a session token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.AdminIdentity, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, apperrors.Internal("Login failed", err)
	}

	if !auth.CheckPassword(admin.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, _, err := s.jwtService.Issue(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return "", nil, apperrors.Internal("Login failed", fmt.Errorf("issue token: %w", err))
	}
	return token, admin.Identity(), nil
}

// Logout revokes the token behind principal for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, principal *auth.Principal) error {
	if s.revoked == nil || principal == nil || principal.Claims == nil {
		return nil
	}
	ttl := s.jwtService.Remaining(principal.Claims)
	if err := s.revoked.Revoke(ctx, principal.Claims.ID, ttl); err != nil {
		return apperrors.Internal("Logout failed", fmt.Errorf("revoke token: %w", err))
	}
	return nil
}

// ChangePassword replaces the admin's password after checking the current one.
func (s *authService) ChangePassword(ctx context.Context, adminID uuid.UUID, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.Field("newPassword", fmt.Sprintf("Must be at least %d characters", minPasswordLength))
	}

	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		return apperrors.Fail(err, "Failed to change password")
	}
	if !auth.CheckPassword(admin.PasswordHash, currentPassword) {
		return apperrors.Field("currentPassword", "Current password is incorrect")
	}

	return s.storePassword(ctx, admin.ID, newPassword)
}

// SetPassword overwrites the password of the admin with email. Used by the CLI.
func (s *authService) SetPassword(ctx context.Context, email, password string) error {
	if len(password) < minPasswordLength {
		return apperrors.Field("password", fmt.Sprintf("Must be at least %d characters", minPasswordLength))
	}
	admin, err := s.adminRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return apperrors.Fail(err, "Admin not found")
	}
	return s.storePassword(ctx, admin.ID, password)
}

// EnsureAdmin creates the bootstrap admin unless one with email already exists.
func (s *authService) EnsureAdmin(ctx context.Context, email, password, name string) (bool, error) {
	email = normalizeEmail(email)
	_, err := s.adminRepo.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return false, fmt.Errorf("check admin existence: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	admin := &model.Admin{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         model.RoleSuperAdmin,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}

func (s *authService) storePassword(ctx context.Context, id uuid.UUID, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return apperrors.Internal("Failed to change password", fmt.Errorf("hash password: %w", err))
	}
	if err := s.adminRepo.UpdatePassword(ctx, id, hash); err != nil {
		return apperrors.Fail(err, "Failed to change password")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
