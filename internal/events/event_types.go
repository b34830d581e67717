package events

import (
	"time"

	"github.com/spec-kit/support-chat-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventChatProcessed          EventType = "chat_processed"
	EventTicketCreated          EventType = "ticket_created"
	EventNotificationDispatched EventType = "notification_dispatched"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ChatProcessedPayload payload.
type ChatProcessedPayload struct {
	Intent     domain.Intent               `json:"intent"`
	Confidence float64                     `json:"confidence"`
	Source     domain.ClassificationSource `json:"source"`
	AgentType  domain.HandlerName          `json:"agent_type"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID     string                `json:"ticket_id"`
	TicketNumber string                `json:"ticket_number"`
	Priority     domain.TicketPriority `json:"priority"`
	Title        string                `json:"title"`
}

// NotificationDispatchedPayload payload.
type NotificationDispatchedPayload struct {
	NotificationID string                     `json:"notification_id"`
	Channel        domain.NotificationChannel `json:"channel"`
	Sent           bool                       `json:"sent"`
	Error          string                     `json:"error,omitempty"`
}
