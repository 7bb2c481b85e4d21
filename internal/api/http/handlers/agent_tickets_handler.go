package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/api/dto"
	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/auth"
	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/domain"
	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/service"
	apperrors "github.com/ARYAN-01-GARG/support-ticketing-system/pkg/util"
)

// AgentTicketsHandler exposes the agent-facing ticket endpoints.
type AgentTicketsHandler struct {
	service *service.TicketService
}

// NewAgentTicketsHandler constructs handler.
func NewAgentTicketsHandler(ticketService *service.TicketService) *AgentTicketsHandler {
	return &AgentTicketsHandler{service: ticketService}
}

// List handles GET /agent/tickets/. Zero assigned tickets is an empty
// list, not a 404.
func (h *AgentTicketsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	tickets, err := h.service.ListForAgent(c.UserContext(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"tickets": dto.NewTicketResponses(tickets),
	})
}

// UpdateStatus handles POST /agent/tickets/:id/status (admin gated).
func (h *AgentTicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.service.UpdateStatus(c.UserContext(), principal.UserID, c.Params("id"), domain.TicketStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "ticket status updated",
		"ticket":  dto.NewTicketResponse(ticket),
	})
}
