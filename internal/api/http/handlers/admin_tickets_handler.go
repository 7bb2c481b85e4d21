package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/api/dto"
	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/auth"
	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/service"
	apperrors "github.com/ARYAN-01-GARG/support-ticketing-system/pkg/util"
)

// AdminTicketsHandler exposes the admin-facing triage endpoints.
type AdminTicketsHandler struct {
	service *service.TicketService
}

// NewAdminTicketsHandler constructs handler.
func NewAdminTicketsHandler(ticketService *service.TicketService) *AdminTicketsHandler {
	return &AdminTicketsHandler{service: ticketService}
}

// List handles GET /admin/tickets/: all tickets plus the agent roster
// for assignment.
func (h *AdminTicketsHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	tickets, err := h.service.List(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	agents, err := h.service.ListAgents(c.UserContext())
	if err != nil {
		return err
	}

	agentViews := make([]dto.UserResponse, 0, len(agents))
	for i := range agents {
		agentViews = append(agentViews, dto.NewUserResponse(&agents[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"tickets": dto.NewTicketResponses(tickets),
		"agents":  agentViews,
	})
}

// Assign handles POST /admin/tickets/:id/assign.
func (h *AdminTicketsHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.service.Assign(c.UserContext(), c.Params("id"), req.AgentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "ticket assigned successfully",
		"ticket":  dto.NewTicketResponse(ticket),
	})
}

// Close handles POST /admin/tickets/:id/close.
func (h *AdminTicketsHandler) Close(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	ticket, err := h.service.Close(c.UserContext(), principal.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "ticket closed successfully",
		"ticket":  dto.NewTicketResponse(ticket),
	})
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminTicketsHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.service.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"dashboard": dto.DashboardResponse{
			Open:       stats.Open,
			InProgress: stats.InProgress,
			Resolved:   stats.Resolved,
			Categories: stats.Categories,
		},
	})
}
