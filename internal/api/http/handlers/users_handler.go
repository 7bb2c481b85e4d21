package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/api/dto"
	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/auth"
	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/domain"
	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/service"
	apperrors "github.com/ARYAN-01-GARG/support-ticketing-system/pkg/util"
)

// UsersHandler exposes registration and login.
type UsersHandler struct {
	auth   *service.AuthService
	secure bool
}

// NewUsersHandler constructs handler. secure controls the cookie's
// Secure flag and should be true outside development.
func NewUsersHandler(authService *service.AuthService, secure bool) *UsersHandler {
	return &UsersHandler{auth: authService, secure: secure}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "user registered successfully",
		"user":    dto.NewUserResponse(user),
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Expires:  exp,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "login successful",
		"user":    dto.NewUserResponse(user),
		"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}
