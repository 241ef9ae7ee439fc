package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("secret123", 4)
	assert.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, ComparePassword(hash, "secret123"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}
