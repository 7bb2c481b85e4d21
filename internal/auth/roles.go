package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/domain"
	apperrors "github.com/ARYAN-01-GARG/support-ticketing-system/pkg/util"
)

// RequireRole gates a route to callers whose role equals the expected
// role. The check is strict equality, not hierarchy: an admin is rejected
// from an agent-only route.
func RequireRole(expected domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role != expected {
			return apperrors.NewForbidden("role mismatch")
		}
		return c.Next()
	}
}
