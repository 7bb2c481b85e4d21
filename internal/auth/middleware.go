package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/domain"
	apperrors "github.com/ARYAN-01-GARG/support-ticketing-system/pkg/util"
)

const principalKey = "auth_principal"

// CookieName is the cookie the login handler sets and the middleware
// accepts alongside the Authorization header.
const CookieName = "token"

// Principal represents the authenticated caller: a verified (userId, role)
// pair. No database lookup happens per request; the token is the source
// of truth for identity.
type Principal struct {
	UserID string
	Role   domain.Role
}

// Middleware validates the signed credential on protected routes.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication. The credential is read from the
// Authorization header or, failing that, the token cookie.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token := extractToken(c)
	if token == "" {
		return apperrors.NewUnauthorized("missing credential")
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		if errors.Is(err, ErrNoSecret) {
			return apperrors.NewInternalError(err)
		}
		return apperrors.NewUnauthorized("invalid or expired credential")
	}

	c.Locals(principalKey, &Principal{UserID: claims.UserID, Role: claims.Role})
	return c.Next()
}

func extractToken(c *fiber.Ctx) string {
	if header := c.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return c.Cookies(CookieName)
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
