package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTwilioSenderNilOnMissingCredentials(t *testing.T) {
	if sender := NewTwilioSender("", "token", "https://api.twilio.com", time.Second); sender != nil {
		t.Error("NewTwilioSender without sid should return nil")
	}
	if sender := NewTwilioSender("sid", "", "https://api.twilio.com", time.Second); sender != nil {
		t.Error("NewTwilioSender without token should return nil")
	}
}

func TestTwilioSend(t *testing.T) {
	var gotPath, gotFrom, gotTo, gotBody string
	var gotUser, gotPass string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		if err := r.ParseForm(); err != nil {
			t.Errorf("bad form body: %v", err)
		}
		gotFrom = r.PostFormValue("From")
		gotTo = r.PostFormValue("To")
		gotBody = r.PostFormValue("Body")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sender := NewTwilioSender("AC123", "secret", server.URL, time.Second)
	err := sender.Send(context.Background(), "whatsapp:+15550000000", "whatsapp:+15551234567", "update\nRef: TKT-1")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if gotPath != "/2010-04-01/Accounts/AC123/Messages.json" {
		t.Errorf("path = %q", gotPath)
	}
	if gotUser != "AC123" || gotPass != "secret" {
		t.Errorf("basic auth = %q/%q", gotUser, gotPass)
	}
	if gotFrom != "whatsapp:+15550000000" || gotTo != "whatsapp:+15551234567" {
		t.Errorf("from/to = %q/%q, want whatsapp prefixes preserved", gotFrom, gotTo)
	}
	if !strings.HasSuffix(gotBody, "Ref: TKT-1") {
		t.Errorf("body = %q", gotBody)
	}
}

func TestTwilioSendRejectsNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "invalid number"}`))
	}))
	defer server.Close()

	sender := NewTwilioSender("AC123", "secret", server.URL, time.Second)
	err := sender.Send(context.Background(), "+15550000000", "bogus", "hi")
	if err == nil {
		t.Fatal("Send succeeded, want error")
	}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "invalid number") {
		t.Errorf("error = %v, want status and provider detail", err)
	}
}
