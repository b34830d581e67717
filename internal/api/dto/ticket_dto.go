package dto

import (
	"time"

	"github.com/spec-kit/support-chat-service/internal/domain"
)

// TicketResponse payload.
type TicketResponse struct {
	ID            string                `json:"id"`
	TicketNumber  string                `json:"ticket_number"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Status        domain.TicketStatus   `json:"status"`
	Priority      domain.TicketPriority `json:"priority"`
	CustomerEmail *string               `json:"customer_email,omitempty"`
	CustomerPhone *string               `json:"customer_phone,omitempty"`
	SessionID     *string               `json:"session_id,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status string `json:"status"`
}

// SessionTicketsResponse payload.
type SessionTicketsResponse struct {
	SessionID string           `json:"session_id"`
	Tickets   []TicketResponse `json:"tickets"`
}

// NotificationResponse is one delivery record.
type NotificationResponse struct {
	ID           string                     `json:"id"`
	Channel      domain.NotificationChannel `json:"channel"`
	Status       domain.NotificationStatus  `json:"status"`
	ErrorMessage *string                    `json:"error_message,omitempty"`
	TicketID     *string                    `json:"ticket_id,omitempty"`
	CreatedAt    time.Time                  `json:"created_at"`
	SentAt       *time.Time                 `json:"sent_at,omitempty"`
}

// SessionNotificationsResponse payload.
type SessionNotificationsResponse struct {
	SessionID     string                 `json:"session_id"`
	Notifications []NotificationResponse `json:"notifications"`
}
