package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-chat-service/internal/domain"
	"github.com/spec-kit/support-chat-service/internal/events"
	"github.com/spec-kit/support-chat-service/internal/notify"
	"github.com/spec-kit/support-chat-service/internal/repository"
	apperrors "github.com/spec-kit/support-chat-service/pkg/util"
)

// ChannelRequest describes one requested delivery.
type ChannelRequest struct {
	Channel        domain.NotificationChannel
	RecipientEmail *string
	RecipientPhone *string
	SessionID      *string
	TicketID       *string
	TicketNumber   string
}

// NotificationService dispatches messages over the configured channels and
// records every attempt. A nil sender means its channel is not configured.
type NotificationService struct {
	notifications repository.NotificationRepository
	email         notify.EmailSender
	sms           notify.SMSSender
	emailFrom     string
	smsFrom       string
	sendTimeout   time.Duration
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NotificationDependencies bundles dispatcher wiring.
type NotificationDependencies struct {
	NotificationRepo repository.NotificationRepository
	EmailSender      notify.EmailSender
	SMSSender        notify.SMSSender
	EmailFrom        string
	SMSFrom          string
	SendTimeout      time.Duration
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
}

// NewNotificationService constructs the dispatcher.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	timeout := deps.SendTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &NotificationService{
		notifications: deps.NotificationRepo,
		email:         deps.EmailSender,
		sms:           deps.SMSSender,
		emailFrom:     deps.EmailFrom,
		smsFrom:       deps.SMSFrom,
		sendTimeout:   timeout,
		dispatcher:    deps.Dispatcher,
		logger:        deps.Logger,
	}
}

// Capabilities reports which channels have a configured sender.
func (s *NotificationService) Capabilities() map[domain.NotificationChannel]bool {
	return map[domain.NotificationChannel]bool{
		domain.ChannelEmail:    s.email != nil,
		domain.ChannelSMS:      s.sms != nil,
		domain.ChannelWhatsApp: s.sms != nil,
	}
}

// ListBySession returns delivery records for a session, newest first.
func (s *NotificationService) ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]domain.Notification, error) {
	notifications, err := s.notifications.ListBySession(ctx, sessionID, limit, offset)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return notifications, nil
}

// Dispatch records the notification as pending, attempts delivery, and moves
// the record to exactly one terminal state. It never returns an error to the
// caller; every failure is carried in the outcome and on the record.
func (s *NotificationService) Dispatch(ctx context.Context, message string, req ChannelRequest) domain.NotificationOutcome {
	notification := &domain.Notification{
		RecipientEmail: req.RecipientEmail,
		RecipientPhone: req.RecipientPhone,
		Channel:        req.Channel,
		Message:        message,
		Status:         domain.NotificationStatusPending,
		SessionID:      req.SessionID,
		TicketID:       req.TicketID,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Error("failed to create notification record", zap.Error(err))
		return domain.NotificationOutcome{
			Sent:    false,
			Channel: req.Channel,
			Error:   "failed to record notification",
		}
	}

	sendErr := s.send(ctx, message, req)
	s.finalize(ctx, notification, sendErr)

	outcome := domain.NotificationOutcome{
		Sent:           sendErr == nil,
		Channel:        req.Channel,
		NotificationID: notification.ID,
	}
	if sendErr != nil {
		outcome.Error = sendErr.Error()
	}

	s.publishEvent(ctx, req, outcome)
	return outcome
}

func (s *NotificationService) send(ctx context.Context, message string, req ChannelRequest) error {
	ticketNumber := req.TicketNumber
	if ticketNumber == "" {
		ticketNumber = "N/A"
	}

	ctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	switch req.Channel {
	case domain.ChannelEmail:
		if req.RecipientEmail == nil || *req.RecipientEmail == "" {
			return fmt.Errorf("email channel requires a recipient email")
		}
		if s.email == nil {
			return fmt.Errorf("email not configured")
		}
		subject := fmt.Sprintf("Support Ticket Update - %s", ticketNumber)
		body := formatEmailBody(message, ticketNumber)
		return s.email.Send(ctx, s.emailFrom, *req.RecipientEmail, subject, body)

	case domain.ChannelSMS, domain.ChannelWhatsApp:
		if req.RecipientPhone == nil || *req.RecipientPhone == "" {
			return fmt.Errorf("%s channel requires a recipient phone", req.Channel)
		}
		if s.sms == nil {
			return fmt.Errorf("%s not configured", req.Channel)
		}
		from := s.smsFrom
		to := *req.RecipientPhone
		if req.Channel == domain.ChannelWhatsApp {
			from = "whatsapp:" + from
			to = "whatsapp:" + to
		}
		return s.sms.Send(ctx, from, to, formatSMSBody(message, ticketNumber))

	default:
		return fmt.Errorf("unknown notification channel %q", req.Channel)
	}
}

// finalize moves the record to its single terminal state. A failed status
// update is logged, never propagated: delivery already happened (or not) and
// the outcome must reach the caller regardless.
func (s *NotificationService) finalize(ctx context.Context, notification *domain.Notification, sendErr error) {
	if sendErr == nil {
		now := time.Now()
		notification.Status = domain.NotificationStatusSent
		notification.SentAt = &now
	} else {
		text := sendErr.Error()
		notification.Status = domain.NotificationStatusFailed
		notification.ErrorMessage = &text
	}

	if err := s.notifications.UpdateStatus(ctx, notification); err != nil {
		s.logger.Error("failed to update notification status",
			zap.String("notification_id", notification.ID),
			zap.String("status", string(notification.Status)),
			zap.Error(err))
	}
}

func formatEmailBody(message, ticketNumber string) string {
	body := fmt.Sprintf(`Hello,

%s

Reference: %s

If you have any questions, just reply to this email.

Best regards,
The Support Team`, message, ticketNumber)
	return strings.ReplaceAll(body, "\n", "<br>")
}

func formatSMSBody(message, ticketNumber string) string {
	return fmt.Sprintf("%s\nRef: %s", message, ticketNumber)
}

func (s *NotificationService) publishEvent(ctx context.Context, req ChannelRequest, outcome domain.NotificationOutcome) {
	if s.dispatcher == nil {
		return
	}
	sessionID := ""
	if req.SessionID != nil {
		sessionID = *req.SessionID
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventNotificationDispatched,
		SessionID: sessionID,
		Timestamp: time.Now(),
		Payload: events.NotificationDispatchedPayload{
			NotificationID: outcome.NotificationID,
			Channel:        outcome.Channel,
			Sent:           outcome.Sent,
			Error:          outcome.Error,
		},
	})
}
