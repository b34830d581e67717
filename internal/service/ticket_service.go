package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/support-chat-service/internal/domain"
	"github.com/spec-kit/support-chat-service/internal/events"
	"github.com/spec-kit/support-chat-service/internal/repository"
	apperrors "github.com/spec-kit/support-chat-service/pkg/util"
)

const ticketTitleLimit = 100

// TicketService is the ledger for complaint tickets: it creates them and
// guards status transitions.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher, logger *zap.Logger) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher, logger: logger}
}

// Create opens a ticket for a complaint message. Tickets are always created
// in open status with a generated, globally unique ticket number.
func (s *TicketService) Create(ctx context.Context, message string, reqCtx domain.RequestContext) (*domain.Ticket, error) {
	sessionID := reqCtx.SessionID
	ticket := &domain.Ticket{
		TicketNumber:  generateTicketNumber(),
		Title:         ticketTitle(message),
		Description:   message,
		Status:        domain.TicketStatusOpen,
		Priority:      domain.TicketPriorityMedium,
		CustomerEmail: reqCtx.CustomerEmail,
		CustomerPhone: reqCtx.CustomerPhone,
		SessionID:     &sessionID,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventTicketCreated,
		SessionID: sessionID,
		Payload: events.TicketCreatedPayload{
			TicketID:     ticket.ID,
			TicketNumber: ticket.TicketNumber,
			Priority:     ticket.Priority,
			Title:        ticket.Title,
		},
	})
	return ticket, nil
}

// GetByNumber looks up a ticket by its public ticket number.
func (s *TicketService) GetByNumber(ctx context.Context, ticketNumber string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByNumber(ctx, ticketNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_number": ticketNumber})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return ticket, nil
}

// ListBySession returns the tickets raised in a session, newest first.
func (s *TicketService) ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListBySession(ctx, sessionID, limit, offset)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return tickets, nil
}

// UpdateStatus advances a ticket through its lifecycle. Only forward
// transitions are accepted; skipping states is allowed, reversing is not.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID string, next domain.TicketStatus) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.NewInternalError(err)
	}
	if !domain.IsValidTicketTransition(ticket.Status, next) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("invalid status transition %s -> %s", ticket.Status, next), nil)
	}
	ticket.Status = next
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return ticket, nil
}

// Process handles a complaint: it opens a ticket and produces the user-facing
// acknowledgement. A ledger failure yields an apologetic response rather than
// failing the chat.
func (s *TicketService) Process(ctx context.Context, message string, reqCtx domain.RequestContext) HandlerResult {
	ticket, err := s.Create(ctx, message, reqCtx)
	if err != nil {
		s.logger.Error("ticket creation failed", zap.Error(err))
		return HandlerResult{
			Response: "I apologize for the inconvenience. I'm currently unable to create a support ticket, but your concern is important to us. Please try again later or contact our support team directly.",
		}
	}

	response := fmt.Sprintf(`I understand your concern and I'm sorry you're experiencing this issue. I want to make sure we address this properly.

I've created a support ticket for you:
Ticket Number: %s

Here's what happens next:
- Your ticket has been assigned to our support team
- You'll receive a confirmation shortly
- A support specialist will review your case within 24 hours
- We'll keep you updated on the progress

Your issue is important to us, and we're committed to resolving it as quickly as possible.`, ticket.TicketNumber)

	return HandlerResult{
		Response:             response,
		TicketID:             &ticket.ID,
		TicketNumber:         &ticket.TicketNumber,
		RequiresNotification: true,
	}
}

// generateTicketNumber combines a sortable UTC timestamp with a random uuid
// fragment so two tickets created within the same second still get distinct
// numbers.
func generateTicketNumber() string {
	timestamp := time.Now().UTC().Format("20060102150405")
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("TKT-%s-%s", timestamp, suffix)
}

func ticketTitle(message string) string {
	runes := []rune(message)
	if len(runes) <= ticketTitleLimit {
		return message
	}
	return string(runes[:ticketTitleLimit]) + "..."
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
