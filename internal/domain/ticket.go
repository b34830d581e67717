package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// ParseTicketStatus maps a raw token to a known status.
func ParseTicketStatus(raw string) (TicketStatus, bool) {
	switch TicketStatus(raw) {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return TicketStatus(raw), true
	default:
		return "", false
	}
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// Ticket is the aggregate for support requests raised from complaints.
type Ticket struct {
	ID            string
	TicketNumber  string
	Title         string
	Description   string
	Status        TicketStatus
	Priority      TicketPriority
	CustomerEmail *string
	CustomerPhone *string
	SessionID     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var ticketStatusRank = map[TicketStatus]int{
	TicketStatusOpen:       0,
	TicketStatusInProgress: 1,
	TicketStatusResolved:   2,
	TicketStatusClosed:     3,
}

// IsValidTicketTransition reports whether a status change moves forward in
// the lifecycle. Skipping states is allowed, moving backwards is not.
func IsValidTicketTransition(current, next TicketStatus) bool {
	currentRank, ok := ticketStatusRank[current]
	if !ok {
		return false
	}
	nextRank, ok := ticketStatusRank[next]
	if !ok {
		return false
	}
	return nextRank > currentRank
}
