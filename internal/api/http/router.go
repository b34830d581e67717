package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-chat-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Chat   *handlers.ChatHandler
	Ticket *handlers.TicketHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/chat", cfg.Chat.Chat)
	api.Post("/chat/classify", cfg.Chat.Classify)
	api.Get("/status", cfg.Chat.Status)
	api.Get("/sessions/:id/history", cfg.Chat.History)
	api.Get("/sessions/:id/tickets", cfg.Ticket.SessionTickets)
	api.Get("/sessions/:id/notifications", cfg.Ticket.SessionNotifications)
	api.Get("/tickets/:number", cfg.Ticket.Get)
	api.Patch("/tickets/:id/status", cfg.Ticket.UpdateStatus)
}
