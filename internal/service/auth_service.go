package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterInput describes a registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	City     string
	Role     domain.UserRole
}

// Register creates a new account. One email maps to exactly one role.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if input.Name == "" || email == "" || input.Password == "" || input.Phone == "" || input.Address == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("name, email, password, phone, address required", nil)
	}
	if !domain.ValidRole(input.Role) {
		return nil, "", time.Time{}, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
	}
	if domain.RequiresCity(input.Role) && strings.TrimSpace(input.City) == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("city is required for this role", nil)
	}

	if existing, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewValidationError(
			"email already registered", map[string]any{"role": existing.Role})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(input.Phone),
		Address:      strings.TrimSpace(input.Address),
		Role:         input.Role,
	}
	if city := strings.TrimSpace(input.City); city != "" {
		user.City = &city
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// Login authenticates an account of any role. Blocked accounts are rejected
// with the block metadata echoed back.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("not registered, please register first")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	if user.Blocked.IsBlocked {
		details := map[string]any{"blocked": true}
		if user.Blocked.BlockedBy != nil {
			details["blocked_by"] = *user.Blocked.BlockedBy
		}
		if user.Blocked.BlockedAt != nil {
			details["blocked_at"] = *user.Blocked.BlockedAt
		}
		if user.Blocked.Reason != nil {
			details["reason"] = *user.Blocked.Reason
		}
		return nil, "", time.Time{}, apperrors.NewForbidden("account blocked", details)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
