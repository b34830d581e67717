package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSendGridSenderNilOnMissingKey(t *testing.T) {
	if sender := NewSendGridSender("", "https://api.sendgrid.com", time.Second); sender != nil {
		t.Error("NewSendGridSender with empty key should return nil")
	}
}

func TestSendGridSend(t *testing.T) {
	var captured sgMail
	var gotAuth, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender := NewSendGridSender("sg-key", server.URL, time.Second)
	err := sender.Send(context.Background(), "support@example.com", "user@example.com",
		"Support Ticket Update - TKT-1", "Hello<br>World")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if gotPath != "/v3/mail/send" {
		t.Errorf("path = %q, want /v3/mail/send", gotPath)
	}
	if gotAuth != "Bearer sg-key" {
		t.Errorf("authorization = %q, want bearer token", gotAuth)
	}
	if captured.From.Email != "support@example.com" {
		t.Errorf("from = %q", captured.From.Email)
	}
	if len(captured.Personalizations) != 1 || len(captured.Personalizations[0].To) != 1 ||
		captured.Personalizations[0].To[0].Email != "user@example.com" {
		t.Errorf("recipients = %+v", captured.Personalizations)
	}
	if len(captured.Content) != 1 || captured.Content[0].Type != "text/html" {
		t.Errorf("content = %+v, want one text/html part", captured.Content)
	}
}

func TestSendGridSendRejectsNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	sender := NewSendGridSender("bad-key", server.URL, time.Second)
	err := sender.Send(context.Background(), "support@example.com", "user@example.com", "subject", "body")
	if err == nil {
		t.Fatal("Send succeeded, want error")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %v, want status code in message", err)
	}
}
