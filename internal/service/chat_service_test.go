package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-chat-service/internal/classifier"
	"github.com/spec-kit/support-chat-service/internal/domain"
)

type chatFixture struct {
	svc           *ChatService
	tickets       *memTicketRepo
	notifications *memNotificationRepo
	exchanges     *memExchangeRepo
	email         *fakeEmailSender
	sms           *fakeSMSSender
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	logger := zap.NewNop()

	tickets := &memTicketRepo{}
	notifications := &memNotificationRepo{}
	exchanges := &memExchangeRepo{}
	faqs := &memFAQRepo{records: faqCatalog()}
	email := &fakeEmailSender{}
	sms := &fakeSMSSender{}

	notifier := NewNotificationService(NotificationDependencies{
		NotificationRepo: notifications,
		EmailSender:      email,
		SMSSender:        sms,
		EmailFrom:        "support@example.com",
		SMSFrom:          "+15550000000",
		SendTimeout:      time.Second,
		Logger:           logger,
	})

	svc := NewChatService(ChatDependencies{
		Classifier:     classifier.NewIntentClassifier(nil, logger),
		Router:         NewRouter(),
		FAQService:     NewFAQService(faqs, logger),
		TicketService:  NewTicketService(tickets, nil, logger),
		AccountService: NewAccountService(),
		NotifyService:  notifier,
		ExchangeRepo:   exchanges,
		Logger:         logger,
	})

	return &chatFixture{
		svc:           svc,
		tickets:       tickets,
		notifications: notifications,
		exchanges:     exchanges,
		email:         email,
		sms:           sms,
	}
}

func TestProcessComplaintFlow(t *testing.T) {
	f := newChatFixture(t)

	result, err := f.svc.Process(context.Background(), ChatRequest{
		Message:       "This is completely broken and I'm furious",
		SessionID:     "session-1",
		CustomerEmail: strPtr("user@example.com"),
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if result.Intent != domain.IntentComplaint {
		t.Errorf("Intent = %s, want %s", result.Intent, domain.IntentComplaint)
	}
	if result.AgentType != domain.HandlerTicket {
		t.Errorf("AgentType = %s, want %s", result.AgentType, domain.HandlerTicket)
	}
	if result.TicketNumber == nil {
		t.Fatal("TicketNumber is nil")
	}
	if !strings.Contains(result.Response, *result.TicketNumber) {
		t.Error("response does not mention the ticket number")
	}

	if len(f.tickets.tickets) != 1 {
		t.Fatalf("stored %d tickets, want 1", len(f.tickets.tickets))
	}
	if f.tickets.tickets[0].Status != domain.TicketStatusOpen {
		t.Errorf("ticket status = %s, want %s", f.tickets.tickets[0].Status, domain.TicketStatusOpen)
	}

	if len(f.notifications.notifications) != 1 {
		t.Fatalf("stored %d notifications, want 1", len(f.notifications.notifications))
	}
	n := f.notifications.notifications[0]
	if n.Channel != domain.ChannelEmail {
		t.Errorf("notification channel = %s, want %s", n.Channel, domain.ChannelEmail)
	}
	if n.Status != domain.NotificationStatusSent {
		t.Errorf("notification status = %s, want %s", n.Status, domain.NotificationStatusSent)
	}
	if f.email.lastTo != "user@example.com" {
		t.Errorf("email sent to %q", f.email.lastTo)
	}

	if len(f.exchanges.exchanges) != 1 {
		t.Fatalf("stored %d exchanges, want 1", len(f.exchanges.exchanges))
	}
	if f.exchanges.exchanges[0].SessionID != "session-1" {
		t.Errorf("exchange session = %q, want session-1", f.exchanges.exchanges[0].SessionID)
	}
}

func TestProcessComplaintNotificationFailureStillSucceeds(t *testing.T) {
	f := newChatFixture(t)
	f.email.err = errors.New("sendgrid error: 500")

	result, err := f.svc.Process(context.Background(), ChatRequest{
		Message:       "This is completely broken and I'm furious",
		SessionID:     "session-1",
		CustomerEmail: strPtr("user@example.com"),
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if result.TicketNumber == nil {
		t.Fatal("TicketNumber is nil; delivery failure must not lose the ticket")
	}

	if len(f.notifications.notifications) != 1 {
		t.Fatalf("stored %d notifications, want 1", len(f.notifications.notifications))
	}
	n := f.notifications.notifications[0]
	if n.Status != domain.NotificationStatusFailed {
		t.Errorf("notification status = %s, want %s", n.Status, domain.NotificationStatusFailed)
	}
	if n.ErrorMessage == nil || *n.ErrorMessage != "sendgrid error: 500" {
		t.Errorf("notification error = %v, want the provider error", n.ErrorMessage)
	}
}

func TestProcessFAQFlow(t *testing.T) {
	f := newChatFixture(t)

	result, err := f.svc.Process(context.Background(), ChatRequest{
		Message:   "How do I reset my password?",
		SessionID: "session-2",
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if result.AgentType != domain.HandlerFAQ {
		t.Errorf("AgentType = %s, want %s", result.AgentType, domain.HandlerFAQ)
	}
	if !strings.Contains(result.Response, "Click 'Forgot Password'") {
		t.Error("response missing the matched answer")
	}
	if result.TicketNumber != nil {
		t.Error("faq flow must not create a ticket")
	}
	if result.RequiresVerification {
		t.Error("faq responses must not flag verification")
	}
	if len(f.notifications.notifications) != 0 {
		t.Errorf("stored %d notifications, want 0", len(f.notifications.notifications))
	}
}

func TestProcessAccountFlow(t *testing.T) {
	f := newChatFixture(t)

	result, err := f.svc.Process(context.Background(), ChatRequest{
		Message:   "Please update my account balance",
		SessionID: "session-3",
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if result.AgentType != domain.HandlerAccount {
		t.Errorf("AgentType = %s, want %s", result.AgentType, domain.HandlerAccount)
	}
	if !strings.Contains(result.Response, "account inquiry") {
		t.Error("response missing account guidance")
	}
	if !result.RequiresVerification {
		t.Error("account responses must flag verification")
	}
}

func TestProcessGeneratesSessionID(t *testing.T) {
	f := newChatFixture(t)

	result, err := f.svc.Process(context.Background(), ChatRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if result.SessionID == "" {
		t.Fatal("SessionID not generated")
	}

	echoed, err := f.svc.Process(context.Background(), ChatRequest{Message: "hello", SessionID: "keep-me"})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if echoed.SessionID != "keep-me" {
		t.Errorf("SessionID = %q, want keep-me", echoed.SessionID)
	}
}

func TestProcessPrefersSMSWithoutEmail(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.svc.Process(context.Background(), ChatRequest{
		Message:       "This is completely broken and I'm furious",
		SessionID:     "session-4",
		CustomerPhone: strPtr("+15551234567"),
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if len(f.notifications.notifications) != 1 {
		t.Fatalf("stored %d notifications, want 1", len(f.notifications.notifications))
	}
	if f.notifications.notifications[0].Channel != domain.ChannelSMS {
		t.Errorf("channel = %s, want %s", f.notifications.notifications[0].Channel, domain.ChannelSMS)
	}
	if f.sms.sendCount != 1 {
		t.Errorf("sms sender invoked %d times, want 1", f.sms.sendCount)
	}
}

func TestHistory(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	for _, message := range []string{"first question", "second question"} {
		if _, err := f.svc.Process(ctx, ChatRequest{Message: message, SessionID: "session-5"}); err != nil {
			t.Fatalf("Process returned error: %v", err)
		}
	}

	history, err := f.svc.History(ctx, "session-5")
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d exchanges, want 2", len(history))
	}
	if history[0].UserMessage != "first question" || history[1].UserMessage != "second question" {
		t.Error("history not in creation order")
	}

	empty, err := f.svc.History(ctx, "no-such-session")
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("history for unknown session has %d exchanges, want 0", len(empty))
	}
}

func TestClassifyPassthrough(t *testing.T) {
	f := newChatFixture(t)

	got := f.svc.Classify(context.Background(), "This is completely broken and I'm furious")
	if got.Intent != domain.IntentComplaint {
		t.Errorf("Intent = %s, want %s", got.Intent, domain.IntentComplaint)
	}
	if f.svc.ModelEnabled() {
		t.Error("ModelEnabled() = true without a configured model")
	}
}
