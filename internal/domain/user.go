package domain

import "time"

// UserRole enumerates account roles.
type UserRole string

const (
	RoleCustomer   UserRole = "CUSTOMER"
	RoleAdmin      UserRole = "ADMIN"
	RoleTechnician UserRole = "TECHNICIAN"
	RoleSuperAdmin UserRole = "SUPERADMIN"
)

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleCustomer, RoleAdmin, RoleTechnician, RoleSuperAdmin:
		return true
	}
	return false
}

// RequiresCity reports whether registration for the role must carry a city.
func RequiresCity(role UserRole) bool {
	return role == RoleCustomer || role == RoleAdmin
}

// BlockRecord captures who blocked an account and why.
type BlockRecord struct {
	IsBlocked bool
	BlockedBy *string
	BlockedAt *time.Time
	Reason    *string
}

// User is the domain model for all account roles. Accounts are never hard-deleted.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	City         *string
	Role         UserRole
	Blocked      BlockRecord
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
