package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleCustomer))
	assert.True(t, ValidRole(RoleSuperAdmin))
	assert.False(t, ValidRole("MANAGER"))
	assert.False(t, ValidRole("customer"))
}

func TestRequiresCity(t *testing.T) {
	assert.True(t, RequiresCity(RoleCustomer))
	assert.True(t, RequiresCity(RoleAdmin))
	assert.False(t, RequiresCity(RoleTechnician))
	assert.False(t, RequiresCity(RoleSuperAdmin))
}

func TestValidRating(t *testing.T) {
	assert.False(t, ValidRating(0))
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(5))
	assert.False(t, ValidRating(6))
}
