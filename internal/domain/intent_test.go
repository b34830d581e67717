package domain

import "testing"

func TestParseIntent(t *testing.T) {
	tests := []struct {
		raw  string
		want Intent
	}{
		{"faq", IntentFAQ},
		{"complaint", IntentComplaint},
		{"account_inquiry", IntentAccountInquiry},
		{"general", IntentGeneral},
		{"banana", IntentGeneral},
		{"", IntentGeneral},
		{"FAQ", IntentGeneral},
	}

	for _, tt := range tests {
		if got := ParseIntent(tt.raw); got != tt.want {
			t.Errorf("ParseIntent(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestParseTicketStatus(t *testing.T) {
	for _, raw := range []string{"open", "in_progress", "resolved", "closed"} {
		status, ok := ParseTicketStatus(raw)
		if !ok || string(status) != raw {
			t.Errorf("ParseTicketStatus(%q) = %s, %v", raw, status, ok)
		}
	}
	if _, ok := ParseTicketStatus("reopened"); ok {
		t.Error("ParseTicketStatus accepted an unknown status")
	}
}

func TestIsValidTicketTransition(t *testing.T) {
	tests := []struct {
		current TicketStatus
		next    TicketStatus
		want    bool
	}{
		{TicketStatusOpen, TicketStatusInProgress, true},
		{TicketStatusOpen, TicketStatusResolved, true},
		{TicketStatusOpen, TicketStatusClosed, true},
		{TicketStatusInProgress, TicketStatusResolved, true},
		{TicketStatusResolved, TicketStatusClosed, true},
		{TicketStatusInProgress, TicketStatusOpen, false},
		{TicketStatusClosed, TicketStatusResolved, false},
		{TicketStatusOpen, TicketStatusOpen, false},
		{TicketStatus("bogus"), TicketStatusOpen, false},
		{TicketStatusOpen, TicketStatus("bogus"), false},
	}

	for _, tt := range tests {
		if got := IsValidTicketTransition(tt.current, tt.next); got != tt.want {
			t.Errorf("IsValidTicketTransition(%s, %s) = %v, want %v", tt.current, tt.next, got, tt.want)
		}
	}
}
