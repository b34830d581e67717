package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/support-chat-service/internal/events"
	"github.com/spec-kit/support-chat-service/internal/observability"
)

// AuditWorker subscribes to pipeline events, logging them and feeding the
// metrics counters.
type AuditWorker struct {
	logger  *zap.Logger
	metrics *observability.Metrics
}

// StartAuditWorker registers audit handlers on the dispatcher.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) {
	if dispatcher == nil {
		return
	}
	w := &AuditWorker{logger: logger, metrics: metrics}
	dispatcher.Subscribe(events.EventChatProcessed, w.handleChatProcessed)
	dispatcher.Subscribe(events.EventTicketCreated, w.handleTicketCreated)
	dispatcher.Subscribe(events.EventNotificationDispatched, w.handleNotificationDispatched)
}

func (w *AuditWorker) handleChatProcessed(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ChatProcessedPayload)
	if !ok {
		return nil
	}
	w.metrics.RecordIntent(string(payload.Intent))
	w.logger.Info("ChatProcessed",
		zap.String("session_id", event.SessionID),
		zap.String("intent", string(payload.Intent)),
		zap.Float64("confidence", payload.Confidence),
		zap.String("source", string(payload.Source)),
		zap.String("agent_type", string(payload.AgentType)))
	return nil
}

func (w *AuditWorker) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	w.logger.Info("TicketCreated",
		zap.String("session_id", event.SessionID),
		zap.String("ticket_id", payload.TicketID),
		zap.String("ticket_number", payload.TicketNumber),
		zap.String("priority", string(payload.Priority)))
	return nil
}

func (w *AuditWorker) handleNotificationDispatched(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.NotificationDispatchedPayload)
	if !ok {
		return nil
	}
	w.metrics.RecordNotification(payload.Sent)
	w.logger.Info("NotificationDispatched",
		zap.String("session_id", event.SessionID),
		zap.String("notification_id", payload.NotificationID),
		zap.String("channel", string(payload.Channel)),
		zap.Bool("sent", payload.Sent),
		zap.String("error", payload.Error))
	return nil
}
