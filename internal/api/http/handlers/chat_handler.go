package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-chat-service/internal/api/dto"
	"github.com/spec-kit/support-chat-service/internal/domain"
	"github.com/spec-kit/support-chat-service/internal/observability"
	"github.com/spec-kit/support-chat-service/internal/service"
	apperrors "github.com/spec-kit/support-chat-service/pkg/util"
)

const maxMessageLength = 1000

// ChatHandler manages the chat pipeline endpoints.
type ChatHandler struct {
	chat    *service.ChatService
	notify  *service.NotificationService
	metrics *observability.Metrics
}

// NewChatHandler constructs handler.
func NewChatHandler(chatService *service.ChatService, notifyService *service.NotificationService, metrics *observability.Metrics) *ChatHandler {
	return &ChatHandler{chat: chatService, notify: notifyService, metrics: metrics}
}

// Chat POST /api/chat.
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	req, err := parseChatRequest(c)
	if err != nil {
		return err
	}

	result, err := h.chat.Process(c.UserContext(), service.ChatRequest{
		Message:       req.Message,
		SessionID:     req.SessionID,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.ChatResponse{
		Response:             result.Response,
		Intent:               result.Intent,
		AgentType:            result.AgentType,
		SessionID:            result.SessionID,
		TicketNumber:         result.TicketNumber,
		RequiresVerification: result.RequiresVerification,
		CreatedAt:            result.CreatedAt,
	})
}

// Classify POST /api/chat/classify.
func (h *ChatHandler) Classify(c *fiber.Ctx) error {
	req, err := parseChatRequest(c)
	if err != nil {
		return err
	}

	result := h.chat.Classify(c.UserContext(), req.Message)
	return c.JSON(dto.ClassificationResponse{
		Intent:     result.Intent,
		Confidence: result.Confidence,
		Reasoning:  result.Rationale,
		Source:     result.Source,
	})
}

// Status GET /api/status.
func (h *ChatHandler) Status(c *fiber.Ctx) error {
	channels := map[string]bool{}
	for channel, configured := range h.notify.Capabilities() {
		channels[string(channel)] = configured
	}
	snapshot := h.metrics.Snapshot()
	return c.JSON(dto.StatusResponse{
		SystemStatus:        "operational",
		ModelEnabled:        h.chat.ModelEnabled(),
		Channels:            channels,
		Intents:             snapshot.Intents,
		NotificationsSent:   snapshot.NotificationsSent,
		NotificationsFailed: snapshot.NotificationsFailed,
	})
}

// History GET /api/sessions/:id/history.
func (h *ChatHandler) History(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if sessionID == "" {
		return apperrors.NewValidationError("session id required", nil)
	}

	history, err := h.chat.History(c.UserContext(), sessionID)
	if err != nil {
		return err
	}

	messages := make([]dto.ExchangeResponse, 0, len(history))
	for _, exchange := range history {
		messages = append(messages, exchangeResponse(exchange))
	}
	return c.JSON(dto.HistoryResponse{
		SessionID: sessionID,
		Messages:  messages,
	})
}

func parseChatRequest(c *fiber.Ctx) (*dto.ChatRequest, error) {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperrors.NewValidationError("message required", nil)
	}
	if len(message) > maxMessageLength {
		return nil, apperrors.NewValidationError("message too long", map[string]any{
			"max_length": maxMessageLength,
		})
	}
	req.Message = message
	return &req, nil
}

func exchangeResponse(exchange domain.ChatExchange) dto.ExchangeResponse {
	return dto.ExchangeResponse{
		ID:          exchange.ID,
		UserMessage: exchange.UserMessage,
		BotResponse: exchange.BotResponse,
		Intent:      exchange.Intent,
		AgentType:   exchange.AgentType,
		CreatedAt:   exchange.CreatedAt,
	}
}
