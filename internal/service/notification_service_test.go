package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-chat-service/internal/domain"
)

func newNotificationService(repo *memNotificationRepo, email *fakeEmailSender, sms *fakeSMSSender) *NotificationService {
	deps := NotificationDependencies{
		NotificationRepo: repo,
		EmailFrom:        "support@example.com",
		SMSFrom:          "+15550000000",
		SendTimeout:      time.Second,
		Logger:           zap.NewNop(),
	}
	if email != nil {
		deps.EmailSender = email
	}
	if sms != nil {
		deps.SMSSender = sms
	}
	return NewNotificationService(deps)
}

func TestDispatchEmailSuccess(t *testing.T) {
	repo := &memNotificationRepo{}
	email := &fakeEmailSender{}
	svc := newNotificationService(repo, email, nil)

	outcome := svc.Dispatch(context.Background(), "Your ticket was created", ChannelRequest{
		Channel:        domain.ChannelEmail,
		RecipientEmail: strPtr("user@example.com"),
		TicketNumber:   "TKT-20260830-ABC12345",
	})

	if !outcome.Sent {
		t.Fatalf("outcome.Sent = false, error %q", outcome.Error)
	}
	if outcome.NotificationID == "" {
		t.Error("outcome missing notification id")
	}
	if email.sendCount != 1 {
		t.Errorf("sender invoked %d times, want 1", email.sendCount)
	}
	if email.lastSubj != "Support Ticket Update - TKT-20260830-ABC12345" {
		t.Errorf("subject = %q", email.lastSubj)
	}
	if strings.Contains(email.lastBody, "\n") {
		t.Error("email body must use <br> line breaks")
	}
	if !strings.Contains(email.lastBody, "<br>") {
		t.Error("email body missing <br> line breaks")
	}

	record, err := repo.GetByID(context.Background(), outcome.NotificationID)
	if err != nil {
		t.Fatalf("record not found: %v", err)
	}
	if record.Status != domain.NotificationStatusSent {
		t.Errorf("record status = %s, want %s", record.Status, domain.NotificationStatusSent)
	}
	if record.SentAt == nil {
		t.Error("record SentAt not set")
	}
	if record.ErrorMessage != nil {
		t.Errorf("record ErrorMessage = %q, want nil", *record.ErrorMessage)
	}
}

func TestDispatchSMSAppendsReference(t *testing.T) {
	repo := &memNotificationRepo{}
	sms := &fakeSMSSender{}
	svc := newNotificationService(repo, nil, sms)

	svc.Dispatch(context.Background(), "Your ticket was created", ChannelRequest{
		Channel:        domain.ChannelSMS,
		RecipientPhone: strPtr("+15551234567"),
		TicketNumber:   "TKT-1",
	})

	if !strings.HasSuffix(sms.lastBody, "Ref: TKT-1") {
		t.Errorf("sms body = %q, want Ref suffix", sms.lastBody)
	}
	if sms.lastFrom != "+15550000000" {
		t.Errorf("from = %q, want the configured sms sender", sms.lastFrom)
	}
}

func TestDispatchMissingTicketNumberDefaultsToNA(t *testing.T) {
	repo := &memNotificationRepo{}
	sms := &fakeSMSSender{}
	svc := newNotificationService(repo, nil, sms)

	svc.Dispatch(context.Background(), "update", ChannelRequest{
		Channel:        domain.ChannelSMS,
		RecipientPhone: strPtr("+15551234567"),
	})

	if !strings.HasSuffix(sms.lastBody, "Ref: N/A") {
		t.Errorf("sms body = %q, want Ref: N/A suffix", sms.lastBody)
	}
}

func TestDispatchWhatsAppPrefixesAddresses(t *testing.T) {
	repo := &memNotificationRepo{}
	sms := &fakeSMSSender{}
	svc := newNotificationService(repo, nil, sms)

	outcome := svc.Dispatch(context.Background(), "update", ChannelRequest{
		Channel:        domain.ChannelWhatsApp,
		RecipientPhone: strPtr("+15551234567"),
		TicketNumber:   "TKT-1",
	})

	if !outcome.Sent {
		t.Fatalf("outcome.Sent = false, error %q", outcome.Error)
	}
	if sms.lastFrom != "whatsapp:+15550000000" {
		t.Errorf("from = %q, want whatsapp prefix", sms.lastFrom)
	}
	if sms.lastTo != "whatsapp:+15551234567" {
		t.Errorf("to = %q, want whatsapp prefix", sms.lastTo)
	}
}

func TestDispatchFailures(t *testing.T) {
	tests := []struct {
		name      string
		email     *fakeEmailSender
		sms       *fakeSMSSender
		req       ChannelRequest
		wantError string
	}{
		{
			name:      "email channel without configured sender",
			req:       ChannelRequest{Channel: domain.ChannelEmail, RecipientEmail: strPtr("user@example.com")},
			wantError: "email not configured",
		},
		{
			name:      "sms channel without configured sender",
			req:       ChannelRequest{Channel: domain.ChannelSMS, RecipientPhone: strPtr("+15551234567")},
			wantError: "sms not configured",
		},
		{
			name:      "whatsapp channel without configured sender",
			req:       ChannelRequest{Channel: domain.ChannelWhatsApp, RecipientPhone: strPtr("+15551234567")},
			wantError: "whatsapp not configured",
		},
		{
			name:      "email channel without recipient",
			email:     &fakeEmailSender{},
			req:       ChannelRequest{Channel: domain.ChannelEmail},
			wantError: "email channel requires a recipient email",
		},
		{
			name:      "sms channel without recipient",
			sms:       &fakeSMSSender{},
			req:       ChannelRequest{Channel: domain.ChannelSMS},
			wantError: "sms channel requires a recipient phone",
		},
		{
			name:      "provider rejects the send",
			email:     &fakeEmailSender{err: errors.New("sendgrid error: 500")},
			req:       ChannelRequest{Channel: domain.ChannelEmail, RecipientEmail: strPtr("user@example.com")},
			wantError: "sendgrid error: 500",
		},
		{
			name:      "unknown channel",
			req:       ChannelRequest{Channel: domain.NotificationChannel("pigeon")},
			wantError: `unknown notification channel "pigeon"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memNotificationRepo{}
			svc := newNotificationService(repo, tt.email, tt.sms)

			outcome := svc.Dispatch(context.Background(), "update", tt.req)
			if outcome.Sent {
				t.Fatal("outcome.Sent = true, want failure")
			}
			if outcome.Error != tt.wantError {
				t.Errorf("outcome.Error = %q, want %q", outcome.Error, tt.wantError)
			}

			record, err := repo.GetByID(context.Background(), outcome.NotificationID)
			if err != nil {
				t.Fatalf("record not found: %v", err)
			}
			if record.Status != domain.NotificationStatusFailed {
				t.Errorf("record status = %s, want %s", record.Status, domain.NotificationStatusFailed)
			}
			if record.ErrorMessage == nil || *record.ErrorMessage != tt.wantError {
				t.Errorf("record ErrorMessage = %v, want %q", record.ErrorMessage, tt.wantError)
			}
			if record.SentAt != nil {
				t.Error("record SentAt set on a failed notification")
			}
		})
	}
}

func TestDispatchRecordCreationFailure(t *testing.T) {
	repo := &memNotificationRepo{createErr: errors.New("connection refused")}
	svc := newNotificationService(repo, &fakeEmailSender{}, nil)

	outcome := svc.Dispatch(context.Background(), "update", ChannelRequest{
		Channel:        domain.ChannelEmail,
		RecipientEmail: strPtr("user@example.com"),
	})

	if outcome.Sent {
		t.Error("outcome.Sent = true, want failure")
	}
	if outcome.Error != "failed to record notification" {
		t.Errorf("outcome.Error = %q", outcome.Error)
	}
}

func TestDispatchSurvivesStatusUpdateFailure(t *testing.T) {
	repo := &memNotificationRepo{updateErr: errors.New("connection reset")}
	email := &fakeEmailSender{}
	svc := newNotificationService(repo, email, nil)

	outcome := svc.Dispatch(context.Background(), "update", ChannelRequest{
		Channel:        domain.ChannelEmail,
		RecipientEmail: strPtr("user@example.com"),
	})

	if !outcome.Sent {
		t.Fatalf("outcome.Sent = false, error %q", outcome.Error)
	}
	if repo.updateCalls != 1 {
		t.Errorf("UpdateStatus called %d times, want exactly 1", repo.updateCalls)
	}
}

func TestCapabilities(t *testing.T) {
	svc := newNotificationService(&memNotificationRepo{}, &fakeEmailSender{}, nil)
	caps := svc.Capabilities()
	if !caps[domain.ChannelEmail] {
		t.Error("email capability = false with configured sender")
	}
	if caps[domain.ChannelSMS] || caps[domain.ChannelWhatsApp] {
		t.Error("sms/whatsapp capability = true without configured sender")
	}
}
