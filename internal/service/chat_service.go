package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/support-chat-service/internal/classifier"
	"github.com/spec-kit/support-chat-service/internal/domain"
	"github.com/spec-kit/support-chat-service/internal/events"
	"github.com/spec-kit/support-chat-service/internal/repository"
	apperrors "github.com/spec-kit/support-chat-service/pkg/util"
)

// ChatRequest is the inbound message plus caller-supplied context.
type ChatRequest struct {
	Message       string
	SessionID     string
	CustomerEmail *string
	CustomerPhone *string
}

// ChatResult is the assembled pipeline output for one message.
type ChatResult struct {
	Response             string
	Intent               domain.Intent
	AgentType            domain.HandlerName
	SessionID            string
	TicketNumber         *string
	RequiresVerification bool
	CreatedAt            time.Time
}

// ChatService sequences the pipeline: classify, route, handle, notify,
// persist. Stages run strictly sequentially; each stage's output feeds the
// next.
type ChatService struct {
	intents       *classifier.IntentClassifier
	router        *Router
	faq           *FAQService
	tickets       *TicketService
	accounts      *AccountService
	notifications *NotificationService
	exchanges     repository.ChatExchangeRepository
	cache         *redis.Client
	cacheTTL      time.Duration
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// ChatDependencies bundles orchestrator wiring.
type ChatDependencies struct {
	Classifier      *classifier.IntentClassifier
	Router          *Router
	FAQService      *FAQService
	TicketService   *TicketService
	AccountService  *AccountService
	NotifyService   *NotificationService
	ExchangeRepo    repository.ChatExchangeRepository
	HistoryCache    *redis.Client
	HistoryCacheTTL time.Duration
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// NewChatService constructs the orchestrator.
func NewChatService(deps ChatDependencies) *ChatService {
	ttl := deps.HistoryCacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ChatService{
		intents:       deps.Classifier,
		router:        deps.Router,
		faq:           deps.FAQService,
		tickets:       deps.TicketService,
		accounts:      deps.AccountService,
		notifications: deps.NotifyService,
		exchanges:     deps.ExchangeRepo,
		cache:         deps.HistoryCache,
		cacheTTL:      ttl,
		dispatcher:    deps.Dispatcher,
		logger:        deps.Logger,
	}
}

// Classify exposes the classifier for the classification-only endpoint.
func (s *ChatService) Classify(ctx context.Context, message string) domain.ClassificationResult {
	return s.intents.Classify(ctx, message)
}

// ModelEnabled reports whether the model classification path is configured.
func (s *ChatService) ModelEnabled() bool {
	return s.intents.ModelEnabled()
}

// Process runs one message through the full pipeline. The user always gets a
// substantive response; downstream delivery failures are recorded, not
// escalated.
func (s *ChatService) Process(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	reqCtx := domain.RequestContext{
		SessionID:     sessionID,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	}

	classification := s.intents.Classify(ctx, req.Message)

	decision, err := s.router.Route(classification.Intent)
	if err != nil {
		// Classification always yields an intent, so this is unreachable
		// through Process; the router still enforces its own contract for
		// direct callers.
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	s.logger.Info("routed message",
		zap.String("session_id", sessionID),
		zap.String("intent", string(decision.Intent)),
		zap.String("handler", string(decision.Target)),
		zap.String("reason", decision.Reason))

	result := s.handle(ctx, decision.Target, req.Message, reqCtx)

	if result.RequiresNotification && (reqCtx.CustomerEmail != nil || reqCtx.CustomerPhone != nil) {
		s.notifyCustomer(ctx, reqCtx, result)
	}

	exchange := &domain.ChatExchange{
		SessionID:   sessionID,
		UserMessage: req.Message,
		BotResponse: result.Response,
		Intent:      classification.Intent,
		AgentType:   decision.Target,
	}
	if err := s.exchanges.Create(ctx, exchange); err != nil {
		s.logger.Error("failed to persist chat exchange", zap.Error(err))
	} else {
		s.invalidateHistory(ctx, sessionID)
	}

	s.publishProcessed(ctx, sessionID, classification, decision.Target)

	createdAt := exchange.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return &ChatResult{
		Response:             result.Response,
		Intent:               classification.Intent,
		AgentType:            decision.Target,
		SessionID:            sessionID,
		TicketNumber:         result.TicketNumber,
		RequiresVerification: result.RequiresVerification,
		CreatedAt:            createdAt,
	}, nil
}

func (s *ChatService) handle(ctx context.Context, target domain.HandlerName, message string, reqCtx domain.RequestContext) HandlerResult {
	switch target {
	case domain.HandlerTicket:
		return s.tickets.Process(ctx, message, reqCtx)
	case domain.HandlerAccount:
		return s.accounts.Process(ctx, message, reqCtx)
	default:
		return s.faq.Process(ctx, message, reqCtx)
	}
}

func (s *ChatService) notifyCustomer(ctx context.Context, reqCtx domain.RequestContext, result HandlerResult) {
	channel := domain.ChannelSMS
	if reqCtx.CustomerEmail != nil && *reqCtx.CustomerEmail != "" {
		channel = domain.ChannelEmail
	}

	ticketNumber := ""
	if result.TicketNumber != nil {
		ticketNumber = *result.TicketNumber
	}

	sessionID := reqCtx.SessionID
	outcome := s.notifications.Dispatch(ctx,
		"Your support request has been received. "+result.Response,
		ChannelRequest{
			Channel:        channel,
			RecipientEmail: reqCtx.CustomerEmail,
			RecipientPhone: reqCtx.CustomerPhone,
			SessionID:      &sessionID,
			TicketID:       result.TicketID,
			TicketNumber:   ticketNumber,
		})

	if !outcome.Sent {
		s.logger.Warn("customer notification failed",
			zap.String("session_id", sessionID),
			zap.String("channel", string(outcome.Channel)),
			zap.String("error", outcome.Error))
	}
}

// History returns prior exchanges for a session ordered by creation time
// ascending. Results are cached in redis for a short TTL; a cache failure
// degrades silently to postgres.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]domain.ChatExchange, error) {
	if cached, ok := s.historyFromCache(ctx, sessionID); ok {
		return cached, nil
	}

	history, err := s.exchanges.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.storeHistory(ctx, sessionID, history)
	return history, nil
}

func historyCacheKey(sessionID string) string {
	return "chat:history:" + sessionID
}

func (s *ChatService) historyFromCache(ctx context.Context, sessionID string) ([]domain.ChatExchange, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, historyCacheKey(sessionID)).Bytes()
	if err != nil {
		return nil, false
	}
	var history []domain.ChatExchange
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, false
	}
	return history, true
}

func (s *ChatService) storeHistory(ctx context.Context, sessionID string, history []domain.ChatExchange) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(history)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, historyCacheKey(sessionID), raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("history cache write failed", zap.Error(err))
	}
}

func (s *ChatService) invalidateHistory(ctx context.Context, sessionID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, historyCacheKey(sessionID)).Err(); err != nil {
		s.logger.Debug("history cache invalidation failed", zap.Error(err))
	}
}

func (s *ChatService) publishProcessed(ctx context.Context, sessionID string, classification domain.ClassificationResult, target domain.HandlerName) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventChatProcessed,
		SessionID: sessionID,
		Timestamp: time.Now(),
		Payload: events.ChatProcessedPayload{
			Intent:     classification.Intent,
			Confidence: classification.Confidence,
			Source:     classification.Source,
			AgentType:  target,
		},
	})
}
