package dto

import (
	"time"

	"github.com/spec-kit/support-chat-service/internal/domain"
)

// ChatRequest payload.
type ChatRequest struct {
	Message       string  `json:"message"`
	SessionID     string  `json:"session_id"`
	CustomerEmail *string `json:"customer_email"`
	CustomerPhone *string `json:"customer_phone"`
}

// ChatResponse payload.
type ChatResponse struct {
	Response             string             `json:"response"`
	Intent               domain.Intent      `json:"intent"`
	AgentType            domain.HandlerName `json:"agent_type"`
	SessionID            string             `json:"session_id"`
	TicketNumber         *string            `json:"ticket_number,omitempty"`
	RequiresVerification bool               `json:"requires_verification,omitempty"`
	CreatedAt            time.Time          `json:"created_at"`
}

// ClassificationResponse payload for the classification-only endpoint.
type ClassificationResponse struct {
	Intent     domain.Intent               `json:"intent"`
	Confidence float64                     `json:"confidence"`
	Reasoning  string                      `json:"reasoning"`
	Source     domain.ClassificationSource `json:"source"`
}

// ExchangeResponse is one history entry.
type ExchangeResponse struct {
	ID          string             `json:"id"`
	UserMessage string             `json:"user_message"`
	BotResponse string             `json:"bot_response"`
	Intent      domain.Intent      `json:"intent"`
	AgentType   domain.HandlerName `json:"agent_type"`
	CreatedAt   time.Time          `json:"created_at"`
}

// HistoryResponse payload.
type HistoryResponse struct {
	SessionID string             `json:"session_id"`
	Messages  []ExchangeResponse `json:"messages"`
}

// StatusResponse reports configured capabilities and pipeline counters.
type StatusResponse struct {
	SystemStatus        string           `json:"system_status"`
	ModelEnabled        bool             `json:"model_enabled"`
	Channels            map[string]bool  `json:"channels"`
	Intents             map[string]int64 `json:"intents"`
	NotificationsSent   int64            `json:"notifications_sent"`
	NotificationsFailed int64            `json:"notifications_failed"`
}
