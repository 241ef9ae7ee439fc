package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

func newAuthService(users *mockUserRepo) *AuthService {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 15,
			BcryptCost:            4,
		},
	}
	return NewAuthService(cfg, users)
}

func TestRegister(t *testing.T) {
	users := new(mockUserRepo)
	svc := newAuthService(users)

	users.On("GetByEmail", mock.Anything, "asha@example.com").Return(nil, pgx.ErrNoRows)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		u.ID = "cust-1"
		return u.Email == "asha@example.com" && u.PasswordHash != "secret123" && *u.City == "Pune"
	})).Return(nil)

	user, token, exp, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Asha",
		Email:    " Asha@Example.com ",
		Password: "secret123",
		Phone:    "9999999999",
		Address:  "12 MG Road",
		City:     "Pune",
		Role:     domain.RoleCustomer,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.TokenManager().ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := new(mockUserRepo)
	svc := newAuthService(users)

	existing := testAdmin()
	users.On("GetByEmail", mock.Anything, existing.Email).Return(existing, nil)

	_, _, _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ravi",
		Email:    existing.Email,
		Password: "secret123",
		Phone:    "7777777777",
		Address:  "2 Link Road",
		City:     "Mumbai",
		Role:     domain.RoleAdmin,
	})

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, domain.RoleAdmin, domainErr.Details["role"])
}

func TestRegisterCityRequiredForCustomer(t *testing.T) {
	svc := newAuthService(new(mockUserRepo))

	_, _, _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
		Phone:    "9999999999",
		Address:  "12 MG Road",
		Role:     domain.RoleCustomer,
	})
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestRegisterCityOptionalForTechnician(t *testing.T) {
	users := new(mockUserRepo)
	svc := newAuthService(users)

	users.On("GetByEmail", mock.Anything, "sunil@example.com").Return(nil, pgx.ErrNoRows)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, _, _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Sunil",
		Email:    "sunil@example.com",
		Password: "secret123",
		Phone:    "8888888888",
		Address:  "4 Station Road",
		Role:     domain.RoleTechnician,
	})

	assert.NoError(t, err)
	assert.Nil(t, user.City)
}

func TestLogin(t *testing.T) {
	users := new(mockUserRepo)
	svc := newAuthService(users)

	hash, err := auth.HashPassword("secret123", 4)
	assert.NoError(t, err)
	customer := testCustomer()
	customer.PasswordHash = hash
	users.On("GetByEmail", mock.Anything, customer.Email).Return(customer, nil)

	user, token, _, err := svc.Login(context.Background(), customer.Email, "secret123")

	assert.NoError(t, err)
	assert.Equal(t, customer.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestLoginWrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	svc := newAuthService(users)

	hash, err := auth.HashPassword("secret123", 4)
	assert.NoError(t, err)
	customer := testCustomer()
	customer.PasswordHash = hash
	users.On("GetByEmail", mock.Anything, customer.Email).Return(customer, nil)

	_, _, _, err = svc.Login(context.Background(), customer.Email, "wrong")

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	svc := newAuthService(users)

	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, pgx.ErrNoRows)

	_, _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	assert.Contains(t, domainErr.Message, "register first")
}

func TestLoginBlockedAccount(t *testing.T) {
	users := new(mockUserRepo)
	svc := newAuthService(users)

	admin := testAdmin()
	by := "Super Admin"
	reason := "Policy violation"
	at := time.Now()
	admin.Blocked = domain.BlockRecord{IsBlocked: true, BlockedBy: &by, BlockedAt: &at, Reason: &reason}
	users.On("GetByEmail", mock.Anything, admin.Email).Return(admin, nil)

	_, _, _, err := svc.Login(context.Background(), admin.Email, "whatever")

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	assert.Equal(t, "Policy violation", domainErr.Details["reason"])
}
