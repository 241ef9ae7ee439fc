package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Phone    string          `json:"phone"`
	Address  string          `json:"address"`
	City     string          `json:"city"`
	Role     domain.UserRole `json:"role"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BlockInfo mirrors the block record on an account.
type BlockInfo struct {
	IsBlocked bool       `json:"isBlocked"`
	BlockedBy *string    `json:"blockedBy,omitempty"`
	BlockedAt *time.Time `json:"blockedAt,omitempty"`
	Reason    *string    `json:"reason,omitempty"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone"`
	Address string          `json:"address"`
	City    *string         `json:"city,omitempty"`
	Role    domain.UserRole `json:"role"`
	Blocked BlockInfo       `json:"blocked"`
}

// NewUserResponse maps a domain user, never exposing the password hash.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		Address: user.Address,
		City:    user.City,
		Role:    user.Role,
		Blocked: BlockInfo{
			IsBlocked: user.Blocked.IsBlocked,
			BlockedBy: user.Blocked.BlockedBy,
			BlockedAt: user.Blocked.BlockedAt,
			Reason:    user.Blocked.Reason,
		},
	}
}

// TechnicianStatusResponse pairs a technician with workload info.
type TechnicianStatusResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	City        *string `json:"city,omitempty"`
	ActiveCount int64   `json:"activeCount"`
	Available   bool    `json:"available"`
}
