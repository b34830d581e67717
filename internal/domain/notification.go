package domain

import "time"

// NotificationChannel enumerates delivery mechanisms.
type NotificationChannel string

const (
	ChannelEmail    NotificationChannel = "email"
	ChannelSMS      NotificationChannel = "sms"
	ChannelWhatsApp NotificationChannel = "whatsapp"
)

// NotificationStatus enumerates delivery record states. Every notification
// starts pending and ends in exactly one of sent or failed.
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// Notification is the durable record of one delivery attempt.
type Notification struct {
	ID             string
	RecipientEmail *string
	RecipientPhone *string
	Channel        NotificationChannel
	Message        string
	Status         NotificationStatus
	ErrorMessage   *string
	SessionID      *string
	TicketID       *string
	CreatedAt      time.Time
	SentAt         *time.Time
}

// NotificationOutcome is the structured result returned by the dispatcher.
// Dispatch never fails outward; failures are carried in Error.
type NotificationOutcome struct {
	Sent           bool
	Channel        NotificationChannel
	NotificationID string
	Error          string
}
