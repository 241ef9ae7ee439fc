package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
)

// actorFromContext returns the authenticated user, or nil when the route
// runs without auth middleware.
func actorFromContext(c *fiber.Ctx) *domain.User {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil
	}
	return principal.User
}
