package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-chat-service/internal/api/dto"
	"github.com/spec-kit/support-chat-service/internal/domain"
	"github.com/spec-kit/support-chat-service/internal/service"
	apperrors "github.com/spec-kit/support-chat-service/pkg/util"
)

// TicketHandler serves ticket lookup and lifecycle endpoints.
type TicketHandler struct {
	tickets       *service.TicketService
	notifications *service.NotificationService
}

// NewTicketHandler constructs handler.
func NewTicketHandler(ticketService *service.TicketService, notifyService *service.NotificationService) *TicketHandler {
	return &TicketHandler{tickets: ticketService, notifications: notifyService}
}

// Get GET /api/tickets/:number.
func (h *TicketHandler) Get(c *fiber.Ctx) error {
	ticketNumber := c.Params("number")
	if ticketNumber == "" {
		return apperrors.NewValidationError("ticket number required", nil)
	}

	ticket, err := h.tickets.GetByNumber(c.UserContext(), ticketNumber)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// UpdateStatus PATCH /api/tickets/:id/status.
func (h *TicketHandler) UpdateStatus(c *fiber.Ctx) error {
	ticketID := c.Params("id")
	if ticketID == "" {
		return apperrors.NewValidationError("ticket id required", nil)
	}

	var req dto.UpdateTicketStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, ok := domain.ParseTicketStatus(req.Status)
	if !ok {
		return apperrors.NewValidationError("unknown status", map[string]any{
			"status": req.Status,
		})
	}

	ticket, err := h.tickets.UpdateStatus(c.UserContext(), ticketID, status)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// SessionTickets GET /api/sessions/:id/tickets.
func (h *TicketHandler) SessionTickets(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if sessionID == "" {
		return apperrors.NewValidationError("session id required", nil)
	}

	tickets, err := h.tickets.ListBySession(c.UserContext(), sessionID,
		c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}

	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(dto.SessionTicketsResponse{
		SessionID: sessionID,
		Tickets:   items,
	})
}

// SessionNotifications GET /api/sessions/:id/notifications.
func (h *TicketHandler) SessionNotifications(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if sessionID == "" {
		return apperrors.NewValidationError("session id required", nil)
	}

	notifications, err := h.notifications.ListBySession(c.UserContext(), sessionID,
		c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, dto.NotificationResponse{
			ID:           n.ID,
			Channel:      n.Channel,
			Status:       n.Status,
			ErrorMessage: n.ErrorMessage,
			TicketID:     n.TicketID,
			CreatedAt:    n.CreatedAt,
			SentAt:       n.SentAt,
		})
	}
	return c.JSON(dto.SessionNotificationsResponse{
		SessionID:     sessionID,
		Notifications: items,
	})
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:            ticket.ID,
		TicketNumber:  ticket.TicketNumber,
		Title:         ticket.Title,
		Description:   ticket.Description,
		Status:        ticket.Status,
		Priority:      ticket.Priority,
		CustomerEmail: ticket.CustomerEmail,
		CustomerPhone: ticket.CustomerPhone,
		SessionID:     ticket.SessionID,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
}
