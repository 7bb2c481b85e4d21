package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/api/http/handlers"
	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/auth"
	"github.com/ARYAN-01-GARG/support-ticketing-system/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	AgentTickets   *handlers.AgentTicketsHandler
	AdminTickets   *handlers.AdminTicketsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Status updates sit under the agent
// prefix but are admin-gated, mirroring the triage flow where admins
// move tickets on behalf of the queue.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("/create", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Post("/:id/reply", cfg.Tickets.PostReply)

	agent := app.Group("/agent", cfg.AuthMiddleware.Handle)
	agent.Get("/tickets/", auth.RequireRole(domain.RoleAgent), cfg.AgentTickets.List)
	agent.Post("/tickets/:id/status", auth.RequireRole(domain.RoleAdmin), cfg.AgentTickets.UpdateStatus)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/tickets/", cfg.AdminTickets.List)
	admin.Post("/tickets/:id/assign", cfg.AdminTickets.Assign)
	admin.Post("/tickets/:id/close", cfg.AdminTickets.Close)
	admin.Get("/dashboard", cfg.AdminTickets.Dashboard)
}
