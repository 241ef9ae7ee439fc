package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("secret", 15)

	token, exp, err := tm.GenerateToken("user-1", "asha@example.com", domain.RoleCustomer)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 15).GenerateToken("user-1", "a@b.c", domain.RoleAdmin)
	assert.NoError(t, err)

	_, err = NewTokenManager("secret-b", 15).ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := NewTokenManager("secret", 15).ParseToken("not.a.token")
	assert.Error(t, err)
}
